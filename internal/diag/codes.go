package diag

import "fmt"

type Code uint16

const (
	UnknownCode Code = 0

	// Лексические
	LexError Code = 1001

	// Синтаксические
	SynUnexpectedToken Code = 2001

	// Семантические
	SemaTypeError Code = 3001

	// Генерация кода и исполнение
	CodegenInvariant Code = 4001
	ToolchainFailed  Code = 5001
	RuntimeAbort     Code = 6001

	// Ввод-вывод
	IOError Code = 7001
)

var codeTitles = map[Code]string{
	UnknownCode:        "Unknown error",
	LexError:           "Invalid token",
	SynUnexpectedToken: "Unexpected token",
	SemaTypeError:      "Type error",
	CodegenInvariant:   "Internal code generator error",
	ToolchainFailed:    "Toolchain failure",
	RuntimeAbort:       "Program aborted",
	IOError:            "I/O error",
}

// ID returns the stable textual identifier, e.g. "SEM3001".
func (c Code) ID() string {
	switch ic := int(c); {
	case ic >= 1000 && ic < 2000:
		return fmt.Sprintf("LEX%04d", ic)
	case ic >= 2000 && ic < 3000:
		return fmt.Sprintf("SYN%04d", ic)
	case ic >= 3000 && ic < 4000:
		return fmt.Sprintf("SEM%04d", ic)
	case ic >= 4000 && ic < 5000:
		return fmt.Sprintf("GEN%04d", ic)
	case ic >= 5000 && ic < 6000:
		return fmt.Sprintf("TLC%04d", ic)
	case ic >= 6000 && ic < 7000:
		return fmt.Sprintf("RUN%04d", ic)
	case ic >= 7000 && ic < 8000:
		return fmt.Sprintf("IOE%04d", ic)
	}
	return "E0000"
}

// Title is the short human name of the code.
func (c Code) Title() string {
	if t, ok := codeTitles[c]; ok {
		return t
	}
	return codeTitles[UnknownCode]
}

func (c Code) String() string {
	return c.ID()
}
