package mir

import (
	"fmt"

	"github.com/vivax3794/viv-script-blog/internal/ir"
)

func (l *funcLowerer) lowerStmt(st ir.Stmt) error {
	switch st := st.(type) {
	case *ir.Print:
		return l.lowerPrint(st)
	case *ir.Assert:
		return l.lowerAssert(st)
	case *ir.Assign:
		dst, err := l.varLocal(st.Target)
		if err != nil {
			return err
		}
		val, err := l.lowerExpr(st.Value)
		if err != nil {
			return err
		}
		l.assign(dst, RValue{Kind: RValueUse, Use: val})
		return nil
	default:
		return fmt.Errorf("unhandled statement %T", st)
	}
}

func (l *funcLowerer) lowerPrint(st *ir.Print) error {
	val, err := l.lowerExpr(st.Value)
	if err != nil {
		return err
	}
	if val.Type == TypeBool {
		text := l.compute(RValue{Kind: RValueSelect, Select: SelectOp{
			Cond: val,
			Then: StringConst(boolTrueText),
			Else: StringConst(boolFalseText),
		}})
		l.call(ExternPrintf, StringConst(FormatStr), text)
		return nil
	}
	l.call(ExternPrintf, StringConst(FormatInt), val)
	return nil
}

func (l *funcLowerer) lowerAssert(st *ir.Assert) error {
	cond, err := l.lowerExpr(st.Cond)
	if err != nil {
		return err
	}
	failBB := l.newBlock(LabelAssertFail)
	okBB := l.newBlock(LabelAssertOK)
	l.setTerm(&Terminator{Kind: TermIf, If: IfTerm{Cond: cond, Then: okBB, Else: failBB}})

	l.startBlock(failBB)
	if st.HasMessage {
		l.abortWith(StringConst(FormatAssertMsg), StringConst(st.Message))
	} else {
		l.abortWith(StringConst(FormatAssert))
	}

	l.startBlock(okBB)
	return nil
}
