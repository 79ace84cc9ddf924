package catalog

type Book struct {
	ISBN       string
	Author     string
	Title      string
	PriceCents int64
	Subject    string
}
