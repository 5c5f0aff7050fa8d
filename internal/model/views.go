package model

// 列表查询用的投影行

type OpportunityListItem struct {
	Opportunity
	ApplicantCount int64 `json:"applicant_count"` // pending + approved 实时计数
}

type ApplicationItem struct {
	Application
	ItemName string `json:"item_name"`
	Kind     string `json:"kind"`
	Username string `json:"username"`
}

type ReportItem struct {
	Report
	ItemName string `json:"item_name"`
	Kind     string `json:"kind"`
	Username string `json:"username"`
}

// MediaOwner 下载鉴权需要的两个主体
type MediaOwner struct {
	OwnerID   uint64
	CreatedBy uint64
}

// StatusCounts 审核页各标签的实时计数
type StatusCounts struct {
	Pending  int64 `json:"pending"`
	Approved int64 `json:"approved"`
	Rejected int64 `json:"rejected"`
	All      int64 `json:"all"`
}
