package subm

// Status is the internal workflow state of a submission. Display labels
// live in progress.go; a guard never compares against a label.
type Status string

const (
	StatusDraft                 Status = "DRAFT"
	StatusSubmittedToState      Status = "SUBMITTED_TO_STATE"
	StatusRejected              Status = "REJECTED"
	StatusReturnedFromState     Status = "RETURNED_FROM_STATE"
	StatusReturnedFromMospi     Status = "RETURNED_FROM_MOSPI"
	StatusSubmittedToMospiRevwr Status = "SUBMITTED_TO_MOSPI_REVIEWER"
	StatusSubmittedToMospiApprv Status = "SUBMITTED_TO_MOSPI_APPROVER"
	StatusApproved              Status = "APPROVED"
	StatusMospiApproved         Status = "MOSPI_APPROVED"
	StatusRejectedFinal         Status = "REJECTED_FINAL"
)

var allStatuses = []Status{
	StatusDraft,
	StatusSubmittedToState,
	StatusRejected,
	StatusReturnedFromState,
	StatusReturnedFromMospi,
	StatusSubmittedToMospiRevwr,
	StatusSubmittedToMospiApprv,
	StatusApproved,
	StatusMospiApproved,
	StatusRejectedFinal,
}

var terminalStatuses = map[Status]struct{}{
	StatusApproved:      {},
	StatusMospiApproved: {},
	StatusRejectedFinal: {},
}

// ownerRoleByStatus maps each non-terminal status to the single role whose
// action is awaited.
var ownerRoleByStatus = map[Status]Role{
	StatusDraft:                 RoleNodalOfficer,
	StatusSubmittedToState:      RoleStateApprover,
	StatusRejected:              RoleNodalOfficer,
	StatusReturnedFromState:     RoleNodalOfficer,
	StatusReturnedFromMospi:     RoleNodalOfficer,
	StatusSubmittedToMospiRevwr: RoleMospiReviewer,
	StatusSubmittedToMospiApprv: RoleMospiApprover,
}

func AllStatuses() []Status {
	return allStatuses
}

func (s Status) IsValid() bool {
	for _, known := range allStatuses {
		if s == known {
			return true
		}
	}
	return false
}

// IsTerminal reports whether no further workflow action is legal.
func (s Status) IsTerminal() bool {
	_, ok := terminalStatuses[s]
	return ok
}

func (s Status) OwnerRole() (Role, bool) {
	role, ok := ownerRoleByStatus[s]
	return role, ok
}

func (s Status) String() string {
	return string(s)
}
