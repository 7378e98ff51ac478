// Package branch derives team-convention git branch names from ticket data.
//
// Branch names follow the pattern rd-<id>-<trigram>-<major.minor>-<slug>,
// where the trigram is a 3-letter code built from the assignee's name and
// the slug is the cleaned ticket subject.
package branch
