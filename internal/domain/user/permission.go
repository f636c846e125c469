package user

type Permission string

const (
	// Read access to every dashboard resource
	PermissionView Permission = "finops.view"

	PermissionMetricsManage  Permission = "metrics.manage"
	PermissionLedgerManage   Permission = "ledger.manage"
	PermissionExpenseManage  Permission = "expense.manage"
	PermissionEmployeeManage Permission = "employee.manage"
	PermissionPaymentManage  Permission = "payment.manage"
	PermissionSettingsManage Permission = "settings.manage"
	PermissionCountryManage  Permission = "country.manage"
	PermissionImport         Permission = "import.run"
	PermissionWalletSync     Permission = "wallet.sync"
)

// RolePermissions maps roles to their permissions
var RolePermissions = map[Role][]Permission{
	RoleAdmin: {
		PermissionView,
		PermissionMetricsManage,
		PermissionLedgerManage,
		PermissionExpenseManage,
		PermissionEmployeeManage,
		PermissionPaymentManage,
		PermissionSettingsManage,
		PermissionCountryManage,
		PermissionImport,
		PermissionWalletSync,
	},
	RoleViewer: {
		PermissionView,
	},
}

// HasPermission checks if a role has a specific permission
func HasPermission(role Role, permission Permission) bool {
	permissions, exists := RolePermissions[role]
	if !exists {
		return false
	}

	for _, p := range permissions {
		if p == permission {
			return true
		}
	}

	return false
}
