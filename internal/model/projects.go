package model

// Project is a tracked organizational project.
type Project struct {
	ID               int64    `json:"id"`
	Name             string   `json:"name"`
	Plan             *Plan    `json:"planGetDTO"`
	Coordinator      *Company `json:"coordinatorCompanyGetDTO"`
	Priority         Priority `json:"priority"`
	ThirdSurveyScore float64  `json:"thirdSurveyScore"`
	IsJoint          bool     `json:"isJoint"`
	Note             *string  `json:"note"`
}

// ProjectSummary is a project row with aggregate counts for listings.
type ProjectSummary struct {
	Project
	CurrentState        *State `json:"currentStateGetDTO"`
	ProjectDetailCount  int    `json:"projectDetailCount"`
	ProjectCompanyCount int    `json:"projectCompanyCount"`
	ProjectFileCount    int    `json:"projectFileCount"`
}

type ProjectPost struct {
	Name                 string   `json:"name"`
	PlanID               int64    `json:"planId"`
	CoordinatorCompanyID int64    `json:"coordinatorCompanyId"`
	Priority             Priority `json:"priority"`
	ThirdSurveyScore     float64  `json:"thirdSurveyScore"`
	IsJoint              bool     `json:"isJoint"`
	Note                 string   `json:"note"`
}

type ProjectPut struct {
	ID                   int64    `json:"id"`
	Name                 string   `json:"name"`
	PlanID               int64    `json:"planId"`
	CoordinatorCompanyID int64    `json:"coordinatorCompanyId"`
	Priority             Priority `json:"priority"`
	ThirdSurveyScore     float64  `json:"thirdSurveyScore"`
	IsJoint              bool     `json:"isJoint"`
	Note                 string   `json:"note"`
}

// ProjectFilter is the bespoke body of the bulk-filter endpoint. All fields
// are optional; nil means "no constraint".
type ProjectFilter struct {
	PlanIDs               []int64    `json:"planIds,omitempty"`
	CoordinatorCompanyIDs []int64    `json:"coordinatorCompanyIds,omitempty"`
	Priorities            []Priority `json:"priorities,omitempty"`
	StateIDs              []int64    `json:"stateIds,omitempty"`
	IsJoint               *bool      `json:"isJoint,omitempty"`
	ThirdSurveyScoreMin   *float64   `json:"thirdSurveyScoreMin,omitempty"`
	ThirdSurveyScoreMax   *float64   `json:"thirdSurveyScoreMax,omitempty"`
	CreatedFrom           *string    `json:"createdFrom,omitempty"`
	CreatedTo             *string    `json:"createdTo,omitempty"`
	SearchTerm            *string    `json:"searchTerm,omitempty"`
}

// ProjectCompany links a company to a project with a category.
type ProjectCompany struct {
	ID       int64                  `json:"id"`
	Project  *Project               `json:"projectGetDTO"`
	Company  *Company               `json:"companyGetDTO"`
	Category ProjectCompanyCategory `json:"category"`
}

type ProjectCompanyPost struct {
	ProjectID int64                  `json:"projectId"`
	CompanyID int64                  `json:"companyId"`
	Category  ProjectCompanyCategory `json:"category"`
}

type ProjectCompanyPut struct {
	ID        int64                  `json:"id"`
	ProjectID int64                  `json:"projectId"`
	CompanyID int64                  `json:"companyId"`
	Category  ProjectCompanyCategory `json:"category"`
}

// ProjectDetail is an itemized detail line on a project.
type ProjectDetail struct {
	ID               int64           `json:"id"`
	SerialNumber     int             `json:"serialNumber"`
	ApproximatePrice float64         `json:"approximatePrice"`
	TotalCount       int             `json:"totalCount"`
	DetailCountType  DetailCountType `json:"detailCountType"`
	Project          *Project        `json:"projectGetDTO"`
	Detail           *Detail         `json:"detailGetDTO"`
}

type ProjectDetailPost struct {
	ApproximatePrice float64         `json:"approximatePrice"`
	TotalCount       int             `json:"totalCount"`
	DetailCountType  DetailCountType `json:"detailCountType"`
	ProjectID        int64           `json:"projectId"`
	DetailID         int64           `json:"detailId"`
}

type ProjectDetailPut struct {
	ID               int64           `json:"id"`
	SerialNumber     int             `json:"serialNumber"`
	ApproximatePrice float64         `json:"approximatePrice"`
	TotalCount       int             `json:"totalCount"`
	DetailCountType  DetailCountType `json:"detailCountType"`
	ProjectID        int64           `json:"projectId"`
	DetailID         int64           `json:"detailId"`
}

// ProjectDetailCompany assigns a company to a project detail.
type ProjectDetailCompany struct {
	ID            int64          `json:"id"`
	Company       *Company       `json:"companyGetDTO"`
	ProjectDetail *ProjectDetail `json:"projectDetailGetDTO"`
}

type ProjectDetailCompanyPost struct {
	CompanyID       int64 `json:"companyId"`
	ProjectDetailID int64 `json:"projectDetailId"`
}

type ProjectDetailCompanyPut struct {
	ID              int64 `json:"id"`
	CompanyID       int64 `json:"companyId"`
	ProjectDetailID int64 `json:"projectDetailId"`
}

// ProjectDetailCompanyState is a workflow state on a detail-company assignment.
type ProjectDetailCompanyState struct {
	ID                   int64                 `json:"id"`
	State                *State                `json:"stateGetDTO"`
	ProjectDetailCompany *ProjectDetailCompany `json:"projectDetailCompanyGetDTO"`
	RejectionNote        *string               `json:"rejectionNote"`
}

type ProjectDetailCompanyStatePost struct {
	StateID                int64   `json:"stateId"`
	ProjectDetailCompanyID int64   `json:"projectDetailCompanyId"`
	RejectionNote          *string `json:"rejectionNote,omitempty"`
}

// ProjectDetailCompanyYear is a per-year production count on an assignment.
type ProjectDetailCompanyYear struct {
	ID                   int64                 `json:"id"`
	Year                 int                   `json:"year"`
	Count                int                   `json:"count"`
	ProjectDetailCompany *ProjectDetailCompany `json:"projectDetailCompanyGetDTO"`
}

type ProjectDetailCompanyYearPost struct {
	Year                   int   `json:"year"`
	Count                  int   `json:"count"`
	ProjectDetailCompanyID int64 `json:"projectDetailCompanyId"`
}

type ProjectDetailCompanyYearPut struct {
	ID                     int64 `json:"id"`
	Year                   int   `json:"year"`
	Count                  int   `json:"count"`
	ProjectDetailCompanyID int64 `json:"projectDetailCompanyId"`
}

// ProjectFile is an attachment's metadata; content travels as multipart.
type ProjectFile struct {
	ID           int64    `json:"id"`
	Project      *Project `json:"projectGetDTO"`
	FileName     string   `json:"fileName"`
	ContentType  string   `json:"contentType"`
	StoredPath   string   `json:"storedPath"`
	FileSize     int64    `json:"fileSize"`
	PrivacyLevel int      `json:"privacyLevel"`
	CreatedAt    string   `json:"createdAt"`
}

// ProjectState is a workflow state entry on a project.
type ProjectState struct {
	ID            int64    `json:"id"`
	Project       *Project `json:"projectGetDTO"`
	State         *State   `json:"stateGetDTO"`
	RejectionNote *string  `json:"rejectionNote"`
}

type ProjectStatePost struct {
	ProjectID     int64   `json:"projectId"`
	StateID       int64   `json:"stateId"`
	RejectionNote *string `json:"rejectionNote,omitempty"`
}

// ProjectStateDegrade is the bespoke body of the degrade transition endpoint.
type ProjectStateDegrade struct {
	ProjectID     int64   `json:"projectId"`
	StateID       int64   `json:"stateId"`
	RejectionNote *string `json:"rejectionNote,omitempty"`
}

// UserPost is the create body for an account.
type UserPost struct {
	Username     string   `json:"username"`
	Email        string   `json:"email"`
	Password     string   `json:"password"`
	CompanyIDs   []string `json:"companyIds"`
	RoleID       int64    `json:"roleId"`
	PrivacyLevel int      `json:"privacyLevel"`
}

// UserPut is the update body for an account.
type UserPut struct {
	Username     string   `json:"username"`
	Email        string   `json:"email"`
	CompanyIDs   []string `json:"companyIds"`
	RoleID       int64    `json:"roleId"`
	PrivacyLevel int      `json:"privacyLevel"`
}
