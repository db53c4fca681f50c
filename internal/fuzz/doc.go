// Package fuzztests houses Go fuzz harnesses that exercise the viv front
// end and middle end (source -> lexer -> parser -> sema -> MIR). Its goal
// is to smoke test robustness and guard against panics, hangs and
// optimizer miscompiles on arbitrary inputs.
//
// Назначение: запускать fuzz-обработчики, которые загружают байты в FileSet и
// прогоняют их через конвейер до MIR и интерпретатора.
//
// Не делает: генерацию корпусов, запись файлов, вызов clang.

package fuzztests
