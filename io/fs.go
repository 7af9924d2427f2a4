package io

import (
	"io/fs"
)

// LoadProgram parses the named instruction file from filesys.
func (ld *Loader) LoadProgram(filesys fs.FS, name string) (prog *Program, err error) {
	inf, err := filesys.Open(name)
	if err != nil {
		return
	}
	defer inf.Close()

	return ld.Parse(inf)
}

// LoadData parses the named data file from filesys.
func LoadData(filesys fs.FS, name string) (data []Datum, err error) {
	inf, err := filesys.Open(name)
	if err != nil {
		return
	}
	defer inf.Close()

	return ReadData(inf)
}
