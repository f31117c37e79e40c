package diag

import (
	"fmt"
)

type Code uint16

const (
	// Неизвестная ошибка
	UnknownCode Code = 0
	// Лексические
	LexInfo        Code = 1000
	LexUnknownChar Code = 1001
	LexBadNumber   Code = 1004

	// I/O
	IOLoadFileError Code = 4001
	IOCacheError    Code = 4002

	// Проектная конфигурация
	ProjInfo          Code = 5000
	ProjInvalidConfig Code = 5001
)

var codeDescription = map[Code]string{
	UnknownCode:       "Unknown error",
	LexInfo:           "Lexical information",
	LexUnknownChar:    "Unknown character",
	LexBadNumber:      "Bad number literal",
	IOLoadFileError:   "I/O load file error",
	IOCacheError:      "Token cache error",
	ProjInfo:          "Project information",
	ProjInvalidConfig: "Invalid project configuration",
}

func (c Code) ID() string {
	switch ic := int(c); {
	case ic >= 1000 && ic < 2000:
		return fmt.Sprintf("LEX%04d", ic)
	case ic >= 4000 && ic < 5000:
		return fmt.Sprintf("IO%04d", ic)
	case ic >= 5000 && ic < 6000:
		return fmt.Sprintf("PRJ%04d", ic)
	}
	return "E0000"
}

func (c Code) Title() string {
	desc, ok := codeDescription[c]
	if !ok {
		return codeDescription[UnknownCode]
	}
	return desc
}

func (c Code) String() string {
	return fmt.Sprintf("[%s]: %s", c.ID(), c.Title())
}
