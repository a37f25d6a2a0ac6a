package model

// Company is a participating organization.
type Company struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Alias string `json:"alias"`
}

// CompanyPost is the create body for a company.
type CompanyPost struct {
	Name  string `json:"name"`
	Alias string `json:"alias"`
}

// CompanyPut is the update body for a company.
type CompanyPut struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Alias string `json:"alias"`
}

// Plan is a multi-year planning period.
type Plan struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	StartYear int    `json:"startYear"`
	EndYear   int    `json:"endYear"`
}

type PlanPost struct {
	Name      string `json:"name"`
	StartYear int    `json:"startYear"`
	EndYear   int    `json:"endYear"`
}

type PlanPut struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	StartYear int    `json:"startYear"`
	EndYear   int    `json:"endYear"`
}

// State is a workflow state; Sequence orders states, IsInitial marks the entry state.
type State struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	Sequence  int    `json:"sequence"`
	IsInitial bool   `json:"isInitial"`
}

type StatePost struct {
	Name      string `json:"name"`
	Sequence  int    `json:"sequence"`
	IsInitial bool   `json:"isInitial"`
}

type StatePut struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	Sequence  int    `json:"sequence"`
	IsInitial bool   `json:"isInitial"`
}

// FunctionalField groups details by functional area.
type FunctionalField struct {
	ID           int64  `json:"id"`
	Name         string `json:"name"`
	Code         string `json:"code"`
	SerialNumber int    `json:"serialNumber"`
}

type FunctionalFieldPost struct {
	Name         string `json:"name"`
	Code         string `json:"code"`
	SerialNumber int    `json:"serialNumber"`
}

type FunctionalFieldPut struct {
	ID           int64  `json:"id"`
	Name         string `json:"name"`
	Code         string `json:"code"`
	SerialNumber int    `json:"serialNumber"`
}

// Detail is an itemized deliverable belonging to a functional field.
type Detail struct {
	ID              int64            `json:"id"`
	Name            string           `json:"name"`
	Code            string           `json:"code"`
	FunctionalField *FunctionalField `json:"functionalFieldGetDTO"`
}

type DetailPost struct {
	Name              string `json:"name"`
	Code              string `json:"code"`
	FunctionalFieldID int64  `json:"functionalFieldId"`
}

type DetailPut struct {
	ID                int64  `json:"id"`
	Name              string `json:"name"`
	Code              string `json:"code"`
	FunctionalFieldID int64  `json:"functionalFieldId"`
}

// Role is a role lookup row from users/roles.
type Role struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}
