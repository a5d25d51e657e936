package views

const defaultLoginFailedMessage = "Sign-in did not complete. Please try again."

func loginFailedMessage(message string) string {
	if message == "" {
		return defaultLoginFailedMessage
	}
	return message
}
