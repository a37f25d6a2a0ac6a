package model

// Priority is the project priority scale (A-1 highest .. C-3 lowest).
type Priority int

const (
	PriorityA1 Priority = iota + 1
	PriorityA2
	PriorityA3
	PriorityB1
	PriorityB2
	PriorityB3
	PriorityC1
	PriorityC2
	PriorityC3
)

// PriorityLabels maps priorities to their display form.
var PriorityLabels = map[Priority]string{
	PriorityA1: "A-1",
	PriorityA2: "A-2",
	PriorityA3: "A-3",
	PriorityB1: "B-1",
	PriorityB2: "B-2",
	PriorityB3: "B-3",
	PriorityC1: "C-1",
	PriorityC2: "C-2",
	PriorityC3: "C-3",
}

func (p Priority) String() string {
	if s, ok := PriorityLabels[p]; ok {
		return s
	}
	return "?"
}

// DetailCountType describes how a detail's quantity is counted.
type DetailCountType int

const (
	CountNone DetailCountType = iota
	CountSet
	CountSystem
	CountNumber
)

// ProjectCompanyCategory classifies a company's role on a project.
type ProjectCompanyCategory int

const (
	CategoryNone ProjectCompanyCategory = iota
	CategoryLeading
	CategoryDemanding
)

// EnumEntry is one id/name pair in the enums response.
type EnumEntry struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// Enums is the catalog returned by the enums endpoint.
type Enums struct {
	Priorities               []EnumEntry `json:"priorities"`
	DetailCountTypes         []EnumEntry `json:"detailCountTypes"`
	ProjectCompanyCategories []EnumEntry `json:"projectCompanyCategories"`
}
