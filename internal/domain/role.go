package domain

// Role is the privilege level of a user. Lower values carry higher
// privilege: an Owner can do everything a Manager can, and so on.
type Role int

const (
	RoleOwner   Role = 1
	RoleManager Role = 2
	RoleCashier Role = 3
)

func (r Role) Valid() bool {
	return r >= RoleOwner && r <= RoleCashier
}

func (r Role) String() string {
	switch r {
	case RoleOwner:
		return "owner"
	case RoleManager:
		return "manager"
	case RoleCashier:
		return "cashier"
	default:
		return "unknown"
	}
}

// Action is a mutating operation subject to the role gate.
type Action int

const (
	ActionCreate Action = iota
	ActionUpdate
	ActionDelete
)

// Resource is an entity kind subject to the role gate.
type Resource int

const (
	ResourceMedication Resource = iota
	ResourceCustomer
	ResourcePrescription
	ResourcePrescriptionDetail
)

// mutationPolicy lists the roles allowed to perform each action per
// resource. Creating any record (and rewriting medication stock and
// price fields) is reserved for the owner, since those paths drive the
// stock ledger. Plain field updates on the other entities are open to
// every authenticated role. Deletes exclude cashiers.
var mutationPolicy = map[Resource]map[Action][]Role{
	ResourceMedication: {
		ActionCreate: {RoleOwner},
		ActionUpdate: {RoleOwner},
		ActionDelete: {RoleOwner, RoleManager},
	},
	ResourceCustomer: {
		ActionCreate: {RoleOwner},
		ActionUpdate: {RoleOwner, RoleManager, RoleCashier},
		ActionDelete: {RoleOwner, RoleManager},
	},
	ResourcePrescription: {
		ActionCreate: {RoleOwner},
		ActionUpdate: {RoleOwner, RoleManager, RoleCashier},
		ActionDelete: {RoleOwner, RoleManager},
	},
	ResourcePrescriptionDetail: {
		ActionCreate: {RoleOwner},
		ActionUpdate: {RoleOwner, RoleManager, RoleCashier},
		ActionDelete: {RoleOwner, RoleManager},
	},
}

// CanMutate reports whether role may perform action on resource. It is
// evaluated before any service call; a denial must leave no side
// effects behind.
func CanMutate(role Role, action Action, resource Resource) bool {
	actions, ok := mutationPolicy[resource]
	if !ok {
		return false
	}

	for _, allowed := range actions[action] {
		if role == allowed {
			return true
		}
	}

	return false
}

// CanHardDelete reports whether a delete by role purges the row
// permanently. Managers soft-delete; only the owner removes rows for
// good.
func CanHardDelete(role Role) bool {
	return role == RoleOwner
}
