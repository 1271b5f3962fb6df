package model

// UserProfile is the authenticated operator as returned by the login call.
type UserProfile struct {
	UserCode string `json:"userCode"`
	FullName string `json:"fullName"`
	Email    string `json:"email"`
	RoleCode string `json:"roleCode"`
	District string `json:"district"`
}

// MenuEntry is one node of the navigation tree delivered with the login
// response. Children are ordered by Order ascending.
type MenuEntry struct {
	Code     string      `json:"code"`
	Label    string      `json:"label"`
	Path     string      `json:"path"`
	Order    int         `json:"order"`
	Children []MenuEntry `json:"children,omitempty"`
}
