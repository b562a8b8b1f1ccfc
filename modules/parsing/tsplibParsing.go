package parsing

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"tsp_aco/modules/models"
)

var ErrUnsupportedEdgeWeightType = errors.New("unsupported edge weight type")

// Known optimal tour lengths of symmetric EUC_2D instances (TSPLIB, rounded distances).
var optimalSolutions = map[string]float64{
	"eil51":    426,
	"berlin52": 7542,
	"st70":     675,
	"eil76":    538,
	"pr76":     108159,
	"rat99":    1211,
	"kroA100":  21282,
}

func KnownOptimal(name string) float64 {
	return optimalSolutions[name]
}

// IsTSPLIB reports whether path is read as a TSPLIB file. Lengths of its
// tours compare with KnownOptimal only under rounded distances.
func IsTSPLIB(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".tsp")
}

// ParseFile reads TSPLIB files (".tsp") and plain point files (anything else).
func ParseFile(path string) (name string, points []models.Point, knownOptimal float64, err error) {
	if IsTSPLIB(path) {
		return ParseTSPLIBFile(path)
	}

	points, err = ParsePointsFile(path)
	if err != nil {
		return "", nil, 0, err
	}

	name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	return name, points, 0, nil
}

// ParseTSPLIBFile reads the NODE_COORD_SECTION of a EUC_2D TSPLIB file.
func ParseTSPLIBFile(path string) (name string, points []models.Point, knownOptimal float64, err error) {
	file, err := os.Open(path)
	if err != nil {
		return "", nil, 0, err
	}

	defer file.Close()

	scanner := bufio.NewScanner(file)
	readCoords := false
	dimension := -1
	lineNumber := 0

	for scanner.Scan() {
		lineNumber++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		if strings.HasPrefix(line, "EOF") {
			break
		}

		if readCoords {
			if !startsWithDigit(line) {
				readCoords = false
			} else {
				point, err := parsePointLine(line)
				if err != nil {
					return "", nil, 0, fmt.Errorf("%s:%d: %w", path, lineNumber, err)
				}

				points = append(points, point)
				continue
			}
		}

		key, value, _ := strings.Cut(line, ":")
		key = strings.TrimSpace(key)
		value = strings.TrimSpace(value)

		switch key {
		case "NAME":
			name = value
		case "DIMENSION":
			dimension, err = strconv.Atoi(value)
			if err != nil {
				return "", nil, 0, fmt.Errorf("%s:%d: dimension: %w", path, lineNumber, err)
			}
		case "EDGE_WEIGHT_TYPE":
			if value != "EUC_2D" {
				return "", nil, 0, fmt.Errorf("%s: %w: %s", path, ErrUnsupportedEdgeWeightType, value)
			}
		case "NODE_COORD_SECTION":
			readCoords = true
		}
	}

	if err := scanner.Err(); err != nil {
		return "", nil, 0, err
	}

	if dimension >= 0 && len(points) != dimension {
		return "", nil, 0, fmt.Errorf("%s: the number of coordinates (%d) does not match the dimension (%d)", path, len(points), dimension)
	}

	return name, points, KnownOptimal(name), nil
}

func startsWithDigit(line string) bool {
	return line[0] >= '0' && line[0] <= '9'
}
