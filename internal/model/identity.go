package model

// Identity 已驗證的呼叫者身分，由 bearer token 解析而來
type Identity struct {
	UserID int    `json:"userId"`
	Email  string `json:"email"`
	Name   string `json:"name"`
	Role   Role   `json:"role"`
}

// IsAuthenticated 是否為已解析的身分
func (i Identity) IsAuthenticated() bool {
	return i.UserID != 0
}

// IsAdmin role must match "Admin" exactly.
func (i Identity) IsAdmin() bool {
	return i.Role == RoleAdmin
}
