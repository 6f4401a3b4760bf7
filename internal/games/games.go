// Package games holds the static data for the in-browser activities.
package games

import "github.com/samber/lo"

// Threats are the labels for the threat-match game, in display order.
var Threats = []string{
	"Phishing",
	"Ransomware",
	"Malware",
	"Social Engineering",
}

// descriptions match Threats index for index.
var descriptions = []string{
	"Attempts to trick individuals into revealing sensitive information.",
	"Encrypts files and demands a ransom for their release.",
	"Software designed to harm or exploit computer systems.",
	"Manipulates individuals to disclose confidential information.",
}

// Descriptions returns the threat descriptions in threat order.
func Descriptions() []string {
	return append([]string(nil), descriptions...)
}

// ShuffledDescriptions returns a fresh uniformly random permutation of the
// threat descriptions, independent for every call.
func ShuffledDescriptions() []string {
	return lo.Shuffle(append([]string(nil), descriptions...))
}
