package i18n

var spanish = map[string]string{
	"internal":          "Algo salió mal. Inténtalo de nuevo más tarde.",
	"rate_limited":      "Demasiadas solicitudes. Espera un momento.",
	"validation.failed": "La solicitud contiene campos inválidos.",
	"not_found":         "El recurso solicitado no existe.",

	"validation.required":        "Este campo es obligatorio.",
	"validation.email":           "Debe ser un correo electrónico válido.",
	"validation.password_policy": "Debe tener entre 8 y 128 caracteres e incluir una letra y un dígito.",
	"validation.too_long":        "Es demasiado largo.",
	"validation.invalid_id":      "Debe ser un identificador válido.",
	"validation.invalid_role":    "Debe ser student, teacher o admin.",
	"validation.code_format":     "Debe ser un código de 6 dígitos.",
	"validation.malformed_json":  "El cuerpo de la solicitud no es JSON válido.",
	"validation.position":        "No puede ser negativo.",
	"validation.page":            "Debe ser un número entero no negativo.",

	"auth.unauthenticated":     "Se requiere autenticación.",
	"auth.forbidden":           "No tienes permiso para realizar esta acción.",
	"auth.email_taken":         "Ya existe una cuenta con este correo.",
	"auth.invalid_credentials": "Correo o contraseña incorrectos.",
	"auth.invalid_code":        "El código es inválido o ha expirado.",
	"auth.invalid_refresh":     "La sesión ha expirado. Inicia sesión de nuevo.",
	"auth.wrong_password":      "La contraseña actual es incorrecta.",
	"auth.registered":          "Cuenta creada. Revisa tu correo para obtener el código de verificación.",
	"auth.verification_sent":   "Si la cuenta existe y no está verificada, se envió un nuevo código.",
	"auth.email_verified":      "Correo verificado. Ya puedes iniciar sesión.",
	"auth.reset_requested":     "Si la cuenta existe, se envió un código de restablecimiento.",
	"auth.password_reset":      "Contraseña actualizada. Inicia sesión de nuevo.",
	"auth.password_changed":    "Contraseña cambiada.",
	"auth.logged_out":          "Sesión cerrada.",

	"user.not_found":     "Usuario no encontrado.",
	"user.deactivated":   "Cuenta desactivada.",
	"user.avatar_key":    "La clave del avatar no pertenece a esta cuenta.",
	"media.unavailable":  "El almacenamiento de archivos no está configurado.",
	"user.self_demotion": "Los administradores no pueden cambiar su propio rol.",

	"classroom.not_found":              "Aula no encontrada.",
	"classroom.already_member":         "Ya eres miembro de esta aula.",
	"classroom.already_requested":      "Ya hay una solicitud pendiente.",
	"classroom.blocked":                "Has sido bloqueado en esta aula.",
	"classroom.join_request_not_found": "Solicitud no encontrada.",
	"classroom.member_not_found":       "Miembro no encontrado.",
	"classroom.join_requested":         "Solicitud enviada.",
	"classroom.join_approved":          "Estudiante añadido al aula.",
	"classroom.join_rejected":          "Solicitud rechazada.",
	"classroom.student_blocked":        "estudiante bloqueado en el aula",
	"classroom.student_unblocked":      "estudiante desbloqueado en el aula",
	"classroom.not_a_student":          "Solo los estudiantes pueden unirse a las aulas.",

	"lecture.not_found":      "Clase no encontrada.",
	"quiz.not_found":         "Cuestionario no encontrado.",
	"question.not_found":     "Pregunta no encontrada.",
	"option_group.not_found": "Grupo de opciones no encontrado.",
	"option.not_found":       "Opción no encontrada.",
}
