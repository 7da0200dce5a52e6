package models

// KPIPoint is one month of a KPI time series.
type KPIPoint struct {
	Month string  `json:"month"`
	Value float64 `json:"value"`
}

// KPIItem is a single dashboard indicator with its target and history.
type KPIItem struct {
	Label       string     `json:"label"`
	Value       float64    `json:"value"`
	Unit        string     `json:"unit"`
	Target      float64    `json:"target"`
	Trend       string     `json:"trend"`       // "up", "down", "flat"
	Aggregation string     `json:"aggregation"` // e.g. "avg", "sum", "latest"
	Direction   string     `json:"direction"`   // whether higher or lower is better
	Series      []KPIPoint `json:"series,omitempty"`
}

// RiskDetail is one concrete risk item under a project's risk descriptor.
type RiskDetail struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Desc   string `json:"desc"`
	Metric string `json:"metric"`
	Status string `json:"status"`
}

// Risk summarizes a project's risk posture for the dashboard card.
type Risk struct {
	Label   string       `json:"label"`
	Value   string       `json:"value"`
	Icon    string       `json:"icon,omitempty"`
	Color   string       `json:"color,omitempty"`
	Details []RiskDetail `json:"details,omitempty"`
}

// DashboardProject is one KPI dashboard entry: a diagnosed client project with
// its indicators, risk descriptor and report body. Document references are
// file names only; no file bytes are stored.
type DashboardProject struct {
	ID                string    `json:"id"`
	Name              string    `json:"name"`
	Category          string    `json:"category"`
	Report            string    `json:"report"` // HTML report body
	UpdatedAt         string    `json:"updated_at"`
	KPIs              []KPIItem `json:"kpis,omitempty"`
	Risk              Risk      `json:"risk"`
	ActionPlanFile    string    `json:"action_plan_file,omitempty"`
	MeetingRecordFile string    `json:"meeting_record_file,omitempty"`
}
