package source

import "fmt"

// Span — полуоткрытый диапазон байтов [Start, End) внутри одного файла.
// Пустой span (Start == End) обозначает позицию: например, место,
// куда fix вставит пропущенную ';'.
type Span struct {
	File  FileID
	Start uint32
	End   uint32
}

func (s Span) Empty() bool  { return s.Start == s.End }
func (s Span) Len() uint32  { return s.End - s.Start }
func (s Span) String() string {
	return fmt.Sprintf("%d:%d-%d", s.File, s.Start, s.End)
}

// Contains сообщает, попадает ли смещение off внутрь span.
// Пустой span содержит только собственную позицию.
func (s Span) Contains(off uint32) bool {
	if s.Empty() {
		return off == s.Start
	}
	return off >= s.Start && off < s.End
}

// Cover — наименьший span, накрывающий s и other. Span из другого
// файла не склеивается: возвращается s без изменений.
func (s Span) Cover(other Span) Span {
	if s.File != other.File {
		return s
	}
	s.Start = min(s.Start, other.Start)
	s.End = max(s.End, other.End)
	return s
}

// AtStart и AtEnd схлопывают span в позицию начала или конца.
func (s Span) AtStart() Span { return Span{File: s.File, Start: s.Start, End: s.Start} }
func (s Span) AtEnd() Span   { return Span{File: s.File, Start: s.End, End: s.End} }
