package subm

// StatusInfo is display metadata for a status. Read-side only; guards and
// authorization never consult labels.
type StatusInfo struct {
	Label       string `json:"label"`
	ColorTag    string `json:"color_tag"`
	Description string `json:"description"`
}

var progressByStatus = map[Status]int{
	StatusDraft:                 10,
	StatusRejected:              20,
	StatusReturnedFromState:     20,
	StatusSubmittedToState:      30,
	StatusReturnedFromMospi:     50,
	StatusSubmittedToMospiRevwr: 60,
	StatusSubmittedToMospiApprv: 80,
	StatusApproved:              100,
	StatusMospiApproved:         100,
	StatusRejectedFinal:         100,
}

var statusInfoByStatus = map[Status]StatusInfo{
	StatusDraft: {
		Label:       "Draft",
		ColorTag:    "gray",
		Description: "Being prepared by the nodal officer",
	},
	StatusSubmittedToState: {
		Label:       "Pending State Approval",
		ColorTag:    "blue",
		Description: "Awaiting review by the state approver",
	},
	StatusRejected: {
		Label:       "Rejected by State",
		ColorTag:    "red",
		Description: "Returned by the state approver for rework",
	},
	StatusReturnedFromState: {
		Label:       "Returned by State",
		ColorTag:    "orange",
		Description: "Sent back by the state approver for corrections",
	},
	StatusReturnedFromMospi: {
		Label:       "Returned by MoSPI",
		ColorTag:    "orange",
		Description: "Sent back by MoSPI for corrections",
	},
	StatusSubmittedToMospiRevwr: {
		Label:       "Under MoSPI Review",
		ColorTag:    "blue",
		Description: "Being examined by the MoSPI reviewer",
	},
	StatusSubmittedToMospiApprv: {
		Label:       "Pending MoSPI Approval",
		ColorTag:    "purple",
		Description: "Awaiting the MoSPI approver's decision",
	},
	StatusApproved: {
		Label:       "Approved",
		ColorTag:    "green",
		Description: "Approved at the state level",
	},
	StatusMospiApproved: {
		Label:       "Approved by MoSPI",
		ColorTag:    "green",
		Description: "Final approval granted by MoSPI",
	},
	StatusRejectedFinal: {
		Label:       "Finally Rejected",
		ColorTag:    "red",
		Description: "Rejected with no further resubmission allowed",
	},
}

// ProgressPercentage maps a status to pipeline completion in [0,100].
func ProgressPercentage(s Status) int {
	return progressByStatus[s]
}

// GetStatusInfo returns display metadata for a status. Unknown statuses
// get a neutral placeholder so dashboards degrade instead of panicking.
func GetStatusInfo(s Status) StatusInfo {
	if info, ok := statusInfoByStatus[s]; ok {
		return info
	}
	return StatusInfo{Label: string(s), ColorTag: "gray", Description: ""}
}
