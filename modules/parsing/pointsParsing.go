package parsing

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"tsp_aco/modules/models"
)

var (
	ErrMalformedLine = errors.New("expected \"index x y\"")
	ErrInvalidIndex  = errors.New("city index must be a positive integer")
	ErrDuplicate     = errors.New("duplicate city index")
)

// ParsePointsFile reads whitespace separated "index x y" lines. Blank lines
// and lines starting with '#' are skipped.
func ParsePointsFile(path string) ([]models.Point, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	points, err := ParsePoints(file)
	if err != nil {
		return nil, fmt.Errorf("%s:%w", path, err)
	}

	return points, nil
}

func ParsePoints(r io.Reader) ([]models.Point, error) {
	scanner := bufio.NewScanner(r)
	seen := make(map[int]int)

	var points []models.Point
	lineNumber := 0

	for scanner.Scan() {
		lineNumber++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		point, err := parsePointLine(line)
		if err != nil {
			return nil, fmt.Errorf("%d: %w", lineNumber, err)
		}

		if first, ok := seen[point.Index]; ok {
			return nil, fmt.Errorf("%d: %w %d, first seen on line %d", lineNumber, ErrDuplicate, point.Index, first)
		}
		seen[point.Index] = lineNumber

		points = append(points, point)
	}

	if err := scanner.Err(); err != nil {
		return nil, err
	}

	return points, nil
}

func parsePointLine(line string) (models.Point, error) {
	fields := strings.Fields(line)
	if len(fields) != 3 {
		return models.Point{}, fmt.Errorf("%w, got %q", ErrMalformedLine, line)
	}

	index, err := strconv.Atoi(fields[0])
	if err != nil || index <= 0 {
		return models.Point{}, fmt.Errorf("%w, got %q", ErrInvalidIndex, fields[0])
	}

	x, err := strconv.ParseFloat(fields[1], 64)
	if err != nil {
		return models.Point{}, fmt.Errorf("x coordinate: %w", err)
	}

	y, err := strconv.ParseFloat(fields[2], 64)
	if err != nil {
		return models.Point{}, fmt.Errorf("y coordinate: %w", err)
	}

	return models.Point{Index: index, X: x, Y: y}, nil
}
