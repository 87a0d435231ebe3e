// models/register.go
package models

// ProjectRecord represents one row of the LTP Hub (long-term planning) register.
// CSV and JSON tags match the register's export headers exactly.
type ProjectRecord struct {
	ProjectNumber          string `csv:"Project #" json:"Project #" db:"project_number"`
	ProjectName            string `csv:"Project Name" json:"Project Name" db:"project_name"`
	Status                 string `csv:"Status" json:"Status" db:"status"`
	TargetDate             string `csv:"Target Date" json:"Target Date" db:"target_date"`
	PJMNumber              string `csv:"PJM #" json:"PJM #" db:"pjm_number"`
	PlannerName            string `csv:"Planner" json:"Planner" db:"planner"`
	Region                 string `csv:"Region" json:"Region" db:"region"`
	TotalLoadProjection    string `csv:"Total Load Projection" json:"Total Load Projection" db:"total_load_projection"` // MW
	FiveYearLoadProjection string `csv:"Five Year Load Projection" json:"Five Year Load Projection" db:"five_year_load_projection"`
	EstimatedBudget        string `csv:"Est. Budget" json:"Est. Budget" db:"est_budget"` // may carry "$" and thousands separators
	CustomerContactName    string `csv:"Customer Contact Name" json:"Customer Contact Name" db:"customer_contact_name"`
	CustomerContactEmail   string `csv:"Customer Contact Email" json:"Customer Contact Email" db:"customer_contact_email"`
	RequestDate            string `csv:"DP Request Date" json:"DP Request Date" db:"dp_request_date"`
}

// FinancialRecord represents one row of the AFE (approval for expenditure) register.
// ProjectNumber is expected, but not guaranteed, to match a ProjectRecord.
type FinancialRecord struct {
	ID                string `csv:"ID" json:"ID" db:"id"`
	Title             string `csv:"Title" json:"Title" db:"title"`
	DateCreated       string `csv:"Date Created" json:"Date Created" db:"date_created"`
	Status            string `csv:"AFE Status" json:"AFE Status" db:"afe_status"`
	PlannerName       string `csv:"ET Planner" json:"ET Planner" db:"et_planner"`
	ProjectNumber     string `csv:"Project Number" json:"Project Number" db:"project_number"`
	ProjectTitle      string `csv:"Project Title" json:"Project Title" db:"project_title"`
	CPRTargetDate     string `csv:"CPR Target Date" json:"CPR Target Date" db:"cpr_target_date"`
	CPREstimatedCost  string `csv:"CPR Est Project Cost" json:"CPR Est Project Cost" db:"cpr_est_project_cost"`
	AFETargetDate     string `csv:"AFE Target Date" json:"AFE Target Date" db:"afe_target_date"`
	EstimatedCost     string `csv:"Est. Project Cost" json:"Est. Project Cost" db:"est_project_cost"`
	FinalApprovalDate string `csv:"Final Approval Date" json:"Final Approval Date" db:"final_approval_date"`
	Submit            string `csv:"Submit" json:"Submit" db:"submit"`
}

// Identifier columns: rows too short to reach these are dropped at ingestion.
const (
	ProjectIDColumn   = "Project #"
	FinancialIDColumn = "ID"
)
