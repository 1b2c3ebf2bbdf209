/*
Package lecternsdk is a Go client for the Lectern API.

# Client and Session

A Client covers the public endpoints: registration, e-mail verification,
password reset and health probes. Logging in returns a Session, which carries
the bearer token for everything else and refreshes it shortly before it
expires:

	client := lecternsdk.NewClient("https://lectern.example.com")

	if _, err := client.Register(ctx, lecternsdk.RegisterRequest{
		Email:    "ada@example.com",
		Password: "P@ss1234",
		FullName: "Ada Lovelace",
	}); err != nil {
		return err
	}
	if err := client.VerifyEmail(ctx, "ada@example.com", codeFromMail); err != nil {
		return err
	}

	session, err := client.Login(ctx, "ada@example.com", "P@ss1234")
	if err != nil {
		return err
	}
	me, err := session.Me(ctx)

# Errors

Failed calls return an *APIError carrying the HTTP status, the error kind
("validation", "not_found", "forbidden", ...), the localized message and,
for validation errors, one message per field:

	_, err := session.GetClassroom(ctx, id)
	if lecternsdk.IsKind(err, lecternsdk.KindForbidden) {
		// not a member of this classroom
	}

Set Client.Lang to receive messages in another language, e.g. "es".
*/
package lecternsdk
