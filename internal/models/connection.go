package models

// ConnectionRole 定義連線角色的類型
type ConnectionRole string

const (
	RoleStudent ConnectionRole = "student" // 學生角色
	RoleHost    ConnectionRole = "host"    // 主持人角色
	RoleUnknown ConnectionRole = "unknown" // 無法識別的角色
)

// ParseConnectionRole 把握手時宣告的角色字串轉成封閉的角色類型
func ParseConnectionRole(s string) ConnectionRole {
	switch s {
	case "student":
		return RoleStudent
	case "host":
		return RoleHost
	default:
		return RoleUnknown
	}
}
