package grammar

// expression is a node of a compiled rule body.
type expression interface {
	isExpression()
}

// seqExpr matches each item in order ('~').
type seqExpr struct {
	items []expression
}

// choiceExpr tries each alternative at the same position ('|').
type choiceExpr struct {
	alts []expression
}

// repeatExpr matches inner between min and max times ('?', '*', '+').
// A negative max means unbounded.
type repeatExpr struct {
	inner expression
	min   int
	max   int
}

// predExpr is a lookahead ('&' positive, '!' negative). It never
// consumes input and its inner events are suppressed.
type predExpr struct {
	inner    expression
	negative bool
}

// literalExpr matches an exact string.
type literalExpr struct {
	text string
}

// rangeExpr matches one rune in [lo, hi].
type rangeExpr struct {
	lo rune
	hi rune
}

// anyExpr matches any single rune (the builtin ANY).
type anyExpr struct{}

// refExpr invokes another rule by name.
type refExpr struct {
	name string
}

func (*seqExpr) isExpression()     {}
func (*choiceExpr) isExpression()  {}
func (*repeatExpr) isExpression()  {}
func (*predExpr) isExpression()    {}
func (*literalExpr) isExpression() {}
func (*rangeExpr) isExpression()   {}
func (*anyExpr) isExpression()     {}
func (*refExpr) isExpression()     {}
