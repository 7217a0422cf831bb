/*
Package csdat is a library for reading and writing terrain heightmaps
stored as CSDAT sector files.
*/
package csdat

import "log"

type Editor struct {
	logger *log.Logger
}

func New(logger *log.Logger) *Editor {
	return &Editor{
		logger: logger,
	}
}
