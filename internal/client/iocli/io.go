package iocli

// IO
type IO interface {
	Println(a ...any)
	Printf(format string, a ...any)
}
