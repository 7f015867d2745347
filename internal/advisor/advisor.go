// Package advisor holds the canned startup-advisor replies. There is no
// model behind it: every non-empty question gets the same answer.
package advisor

import "strings"

const (
	// Tagline is shown beside the dashboard title.
	Tagline = "Predict the future of your startup with advanced AI analytics!"

	// Intro invites the user to ask a question.
	Intro = "Get AI-driven insights for your startup. Ask anything about valuation, funding, and growth strategies!"

	// Reply is the answer to every question.
	Reply = "Your startup has a bright future! 🚀 Keep innovating and growing."

	boostReply = "Your startup is now worth 10x more... Just kidding! Keep pushing forward! 💡"
)

// Ask returns the advisor reply for question. Blank questions get no reply.
func Ask(question string) (string, bool) {
	if strings.TrimSpace(question) == "" {
		return "", false
	}
	return Reply, true
}

// Boost returns the "boost my valuation" message. The valuation is unchanged.
func Boost() string {
	return boostReply
}
