package io

import (
	"bufio"
	"errors"
	"io"
	"strings"
)

// Datum is a single memory initialization pair.
type Datum struct {
	Address int
	Value   int
}

// ReadData parses 'address,value' lines from input.
// Blank lines and ';' comments are skipped.
func ReadData(input io.Reader) (data []Datum, err error) {
	scanner := bufio.NewScanner(input)

	var line string
	var lineno int

	defer func() {
		if err != nil {
			err = ErrSyntax{LineNo: lineno, Line: line, Err: err}
		}
	}()

	for scanner.Scan() {
		line = scanner.Text()
		lineno += 1

		text := strings.TrimSpace(strings.Split(line, ";")[0])
		if len(text) == 0 {
			continue
		}

		words := strings.Split(text, ",")
		if len(words) != 2 {
			err = ErrDataSyntax
			return
		}

		var pair [2]int64
		for n, word := range words {
			pair[n], err = valueOf(strings.TrimSpace(word))
			if err != nil {
				err = errors.Join(ErrDataSyntax, err)
				return
			}
		}

		data = append(data, Datum{Address: int(pair[0]), Value: int(pair[1])})
	}

	err = scanner.Err()
	return
}
