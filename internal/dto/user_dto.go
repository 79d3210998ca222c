package dto

type UpdateRoleRequest struct {
	Role string `json:"role" binding:"required,oneof=ADMIN EDITOR USER"`
}

type UpdateStatusRequest struct {
	IsActive *bool `json:"isActive" binding:"required"`
}

type ModerationRequest struct {
	IsBanned  *bool   `json:"isBanned"`
	BanReason *string `json:"banReason"`
	AdminNote *string `json:"adminNote"`
}

type DeletionRequestInput struct {
	Reason *string `json:"reason"`
}
