package lecternsdk

import "time"

// ============================================================================
// Health
// ============================================================================

// HealthResponse is returned by /livez and /readyz.
type HealthResponse struct {
	Status  string        `json:"status" example:"ok"`
	Uptime  string        `json:"uptime" example:"1h2m3s"`
	Version string        `json:"version" example:"0.1.0"`
	Checks  *HealthChecks `json:"checks,omitempty"`
}

// HealthChecks reports each dependency as "ok", "disabled" or "error: ...".
type HealthChecks struct {
	Database string `json:"database" example:"ok"`
	Schema   string `json:"schema" example:"ok"`
	Signer   string `json:"signer" example:"ok"`
	Mail     string `json:"mail,omitempty" example:"disabled"`
	Media    string `json:"media,omitempty" example:"ok"`
	Limiter  string `json:"limiter,omitempty" example:"ok"`
}

// ============================================================================
// Auth
// ============================================================================

type RegisterRequest struct {
	Email    string `json:"email" example:"ada@example.com"`
	Password string `json:"password" example:"P@ss1234"`
	FullName string `json:"full_name" example:"Ada Lovelace"`
}

type VerifyEmailRequest struct {
	Email string `json:"email" example:"ada@example.com"`
	Code  string `json:"code" example:"123456"`
}

// EmailRequest carries a single address (resend verification, forgot
// password).
type EmailRequest struct {
	Email string `json:"email" example:"ada@example.com"`
}

type LoginRequest struct {
	Email    string `json:"email" example:"ada@example.com"`
	Password string `json:"password" example:"P@ss1234"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

type ResetPasswordRequest struct {
	Email       string `json:"email" example:"ada@example.com"`
	Code        string `json:"code" example:"123456"`
	NewPassword string `json:"new_password" example:"N3wSecret"`
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
}

// TokenResponse is returned by login, refresh and password change.
type TokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	TokenType    string `json:"token_type" example:"Bearer"`
	ExpiresIn    int    `json:"expires_in" example:"900"`
}

// MessageResponse is a localized confirmation sentence.
type MessageResponse struct {
	Message string `json:"message" example:"student blocked from classroom"`
}

// ============================================================================
// Users
// ============================================================================

type UserResponse struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	FullName  string    `json:"full_name"`
	Role      string    `json:"role" example:"student"`
	Active    bool      `json:"active"`
	AvatarURL string    `json:"avatar_url,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type UpdateProfileRequest struct {
	FullName string `json:"full_name" example:"Ada King"`
}

// AvatarUploadResponse tells the client where to PUT the image. The key is
// confirmed afterwards with SetAvatarRequest.
type AvatarUploadResponse struct {
	Key       string    `json:"key"`
	UploadURL string    `json:"upload_url"`
	ExpiresAt time.Time `json:"expires_at"`
}

type SetAvatarRequest struct {
	Key string `json:"key"`
}

type SetRoleRequest struct {
	Role string `json:"role" example:"teacher"`
}

// ============================================================================
// Classrooms
// ============================================================================

type ClassroomRequest struct {
	Name        string `json:"name" example:"Algebra I"`
	Description string `json:"description"`
}

// ClassroomPatchRequest updates only the fields present in the body.
type ClassroomPatchRequest struct {
	Name        *string `json:"name,omitempty"`
	Description *string `json:"description,omitempty"`
}

type ClassroomResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	OwnerID     string    `json:"owner_id"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type JoinRequestResponse struct {
	ID           string    `json:"id"`
	ClassroomID  string    `json:"classroom_id"`
	StudentID    string    `json:"student_id"`
	StudentEmail string    `json:"student_email,omitempty"`
	StudentName  string    `json:"student_name,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

type MemberResponse struct {
	ClassroomID  string    `json:"classroom_id"`
	StudentID    string    `json:"student_id"`
	StudentEmail string    `json:"student_email,omitempty"`
	StudentName  string    `json:"student_name,omitempty"`
	Active       bool      `json:"active"`
	JoinedAt     time.Time `json:"joined_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// ============================================================================
// Lectures
// ============================================================================

type LectureRequest struct {
	Title    string `json:"title" example:"Linear equations"`
	Content  string `json:"content"`
	Position int    `json:"position"`
}

type LecturePatchRequest struct {
	Title    *string `json:"title,omitempty"`
	Content  *string `json:"content,omitempty"`
	Position *int    `json:"position,omitempty"`
}

type LectureResponse struct {
	ID          string    `json:"id"`
	ClassroomID string    `json:"classroom_id"`
	Title       string    `json:"title"`
	Content     string    `json:"content"`
	Position    int       `json:"position"`
	CreatedBy   string    `json:"created_by"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// ============================================================================
// Quizzes
// ============================================================================

type QuizRequest struct {
	Title       string            `json:"title" example:"Chapter 1"`
	Description string            `json:"description"`
	Questions   []QuestionRequest `json:"questions,omitempty"`
}

type QuestionRequest struct {
	Prompt       string               `json:"prompt"`
	Position     int                  `json:"position"`
	OptionGroups []OptionGroupRequest `json:"option_groups,omitempty"`
}

type OptionGroupRequest struct {
	Label    string                `json:"label"`
	Position int                   `json:"position"`
	Options  []AnswerOptionRequest `json:"options"`
}

type AnswerOptionRequest struct {
	Text      string `json:"text"`
	IsCorrect bool   `json:"is_correct"`
	Position  int    `json:"position"`
}

type QuizPatchRequest struct {
	Title       *string `json:"title,omitempty"`
	Description *string `json:"description,omitempty"`
}

type QuestionPatchRequest struct {
	Prompt   *string `json:"prompt,omitempty"`
	Position *int    `json:"position,omitempty"`
}

type OptionGroupPatchRequest struct {
	Label    *string `json:"label,omitempty"`
	Position *int    `json:"position,omitempty"`
}

type AnswerOptionPatchRequest struct {
	Text      *string `json:"text,omitempty"`
	IsCorrect *bool   `json:"is_correct,omitempty"`
	Position  *int    `json:"position,omitempty"`
}

// QuizResponse carries the question tree on single-quiz reads only.
type QuizResponse struct {
	ID          string             `json:"id"`
	LectureID   string             `json:"lecture_id"`
	Title       string             `json:"title"`
	Description string             `json:"description"`
	CreatedAt   time.Time          `json:"created_at"`
	UpdatedAt   time.Time          `json:"updated_at"`
	Questions   []QuestionResponse `json:"questions,omitempty"`
}

type QuestionResponse struct {
	ID           string                `json:"id"`
	QuizID       string                `json:"quiz_id"`
	Prompt       string                `json:"prompt"`
	Position     int                   `json:"position"`
	OptionGroups []OptionGroupResponse `json:"option_groups"`
}

type OptionGroupResponse struct {
	ID         string                 `json:"id"`
	QuestionID string                 `json:"question_id"`
	Label      string                 `json:"label"`
	Position   int                    `json:"position"`
	Options    []AnswerOptionResponse `json:"options"`
}

// AnswerOptionResponse omits is_correct for students.
type AnswerOptionResponse struct {
	ID            string `json:"id"`
	OptionGroupID string `json:"option_group_id"`
	Text          string `json:"text"`
	IsCorrect     *bool  `json:"is_correct,omitempty"`
	Position      int    `json:"position"`
}
