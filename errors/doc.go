// Package errors turns internal failures into actionable CLI messages.
//
// CLIError carries a user-facing message plus a suggestion for fixing
// the problem. Describe maps the errors the tool runs into (Redmine
// API failures, connection problems, git repository issues) to
// CLIErrors with suggestions naming the relevant redbranch commands.
//
//	if err := wf.Run(ctx, ticketID); err != nil {
//	    return errors.Describe(err, cfg.URL)
//	}
package errors
