package i18n

var english = map[string]string{
	// Generic
	"internal":          "Something went wrong. Please try again later.",
	"rate_limited":      "Too many requests. Please slow down.",
	"validation.failed": "The request contains invalid fields.",
	"not_found":         "The requested resource does not exist.",

	// Field validation
	"validation.required":        "This field is required.",
	"validation.email":           "Must be a valid e-mail address.",
	"validation.password_policy": "Must be 8 to 128 characters and contain a letter and a digit.",
	"validation.too_long":        "Is too long.",
	"validation.invalid_id":      "Must be a valid identifier.",
	"validation.invalid_role":    "Must be one of student, teacher or admin.",
	"validation.code_format":     "Must be a 6-digit code.",
	"validation.malformed_json":  "The request body is not valid JSON.",
	"validation.position":        "Must not be negative.",
	"validation.page":            "Must be a non-negative whole number.",

	// Auth
	"auth.unauthenticated":     "Authentication is required.",
	"auth.forbidden":           "You do not have permission to perform this action.",
	"auth.email_taken":         "An account with this e-mail already exists.",
	"auth.invalid_credentials": "Invalid e-mail or password.",
	"auth.invalid_code":        "The code is invalid or has expired.",
	"auth.invalid_refresh":     "The session has expired. Please sign in again.",
	"auth.wrong_password":      "The current password is incorrect.",
	"auth.registered":          "Account created. Check your e-mail for the verification code.",
	"auth.verification_sent":   "If the account exists and is not verified, a new code has been sent.",
	"auth.email_verified":      "E-mail verified. You can now sign in.",
	"auth.reset_requested":     "If the account exists, a reset code has been sent.",
	"auth.password_reset":      "Password updated. Please sign in again.",
	"auth.password_changed":    "Password changed.",
	"auth.logged_out":          "Signed out.",

	// Users
	"user.not_found":     "User not found.",
	"user.deactivated":   "Account deactivated.",
	"user.avatar_key":    "The avatar key does not belong to this account.",
	"media.unavailable":  "File storage is not configured.",
	"user.self_demotion": "Administrators cannot change their own role.",

	// Classrooms
	"classroom.not_found":              "Classroom not found.",
	"classroom.already_member":         "You are already a member of this classroom.",
	"classroom.already_requested":      "A join request is already pending.",
	"classroom.blocked":                "You have been blocked from this classroom.",
	"classroom.join_request_not_found": "Join request not found.",
	"classroom.member_not_found":       "Member not found.",
	"classroom.join_requested":         "Join request sent.",
	"classroom.join_approved":          "Student added to classroom.",
	"classroom.join_rejected":          "Join request rejected.",
	"classroom.student_blocked":        "student blocked from classroom",
	"classroom.student_unblocked":      "student unblocked in classroom",
	"classroom.not_a_student":          "Only students can join classrooms.",

	// Lectures and quizzes
	"lecture.not_found":      "Lecture not found.",
	"quiz.not_found":         "Quiz not found.",
	"question.not_found":     "Question not found.",
	"option_group.not_found": "Option group not found.",
	"option.not_found":       "Answer option not found.",
}
