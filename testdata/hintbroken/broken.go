package hintbroken

type Good struct{}

type Bad struct {
	Missing Undefined
}
