package domain

import "math"

// PageRequest representa una solicitud de página (Page empieza en cero)
type PageRequest struct {
	Page int
	Size int
}

// Offset calcula cuántos registros se saltan antes de la página. Satura en
// math.MaxInt cuando page*size no cabe en un int
func (r PageRequest) Offset() int {
	if r.Page <= 0 || r.Size <= 0 {
		return 0
	}
	if r.Page > math.MaxInt/r.Size {
		return math.MaxInt
	}
	return r.Page * r.Size
}

// Page es una página de personas junto con el total de registros
type Page struct {
	Content       []Persona
	TotalElements int64
	Number        int
	Size          int
}

// NewPage arma una página a partir del contenido y el total de registros
func NewPage(content []Persona, req PageRequest, total int64) Page {
	if content == nil {
		content = []Persona{}
	}
	return Page{
		Content:       content,
		TotalElements: total,
		Number:        req.Page,
		Size:          req.Size,
	}
}

// TotalPages retorna la cantidad de páginas disponibles
func (p Page) TotalPages() int {
	if p.Size <= 0 {
		return 1
	}
	size := int64(p.Size)
	pages := p.TotalElements / size
	if p.TotalElements%size != 0 {
		pages++
	}
	return int(pages)
}

func (p Page) NumberOfElements() int {
	return len(p.Content)
}

func (p Page) First() bool {
	return p.Number == 0
}

func (p Page) Last() bool {
	return p.Number+1 >= p.TotalPages()
}

func (p Page) Empty() bool {
	return len(p.Content) == 0
}
