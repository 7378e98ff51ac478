package redbranch

import (
	"errors"
	"reflect"
	"testing"
)

func TestResolveBase(t *testing.T) {
	tests := []struct {
		name string
		in   ResolveInput
		want Resolution
	}{
		{
			name: "already on branch",
			in: ResolveInput{
				Branch:        "rd-42-abc-8.1-do-stuff",
				TicketID:      42,
				TargetVersion: "8.1",
				HeadRef:       "refs/heads/rd-42-abc-8.1-do-stuff",
				Remote:        "origin",
				RemoteBranches: []string{
					"origin/master",
				},
			},
			want: Resolution{
				Action: ActionAlreadyOnBranch,
				Branch: "rd-42-abc-8.1-do-stuff",
			},
		},
		{
			name: "remote branch for ticket exists",
			in: ResolveInput{
				Branch:        "rd-42-abc-8.1-do-stuff",
				TicketID:      42,
				TargetVersion: "8.1",
				HeadRef:       "refs/heads/master",
				Remote:        "origin",
				RemoteBranches: []string{
					"origin/master",
					"origin/rd-42-xyz-8.1-old-subject",
				},
			},
			want: Resolution{
				Action:   ActionBranchExists,
				Branch:   "rd-42-abc-8.1-do-stuff",
				Existing: "origin/rd-42-xyz-8.1-old-subject",
			},
		},
		{
			name: "maintenance branch preferred over master",
			in: ResolveInput{
				Branch:        "rd-42-abc-8.1-do-stuff",
				TicketID:      42,
				TargetVersion: "8.1",
				HeadRef:       "refs/heads/master",
				Remote:        "origin",
				RemoteBranches: []string{
					"origin/master",
					"origin/wab-7.2",
					"origin/wab-8.1",
				},
			},
			want: Resolution{
				Action: ActionCreate,
				Branch: "rd-42-abc-8.1-do-stuff",
				Base:   "origin/wab-8.1",
				Notes:  []string{"Using maintenance branch origin/wab-8.1"},
			},
		},
		{
			name: "no parent falls back to master",
			in: ResolveInput{
				Branch:        "rd-42-abc-8.1-do-stuff",
				TicketID:      42,
				TargetVersion: "8.1",
				HeadRef:       "refs/heads/master",
				Remote:        "origin",
				RemoteBranches: []string{
					"origin/master",
				},
			},
			want: Resolution{
				Action: ActionCreate,
				Branch: "rd-42-abc-8.1-do-stuff",
				Base:   "origin/master",
				Notes:  []string{"This ticket has no parent"},
			},
		},
		{
			name: "parent without branch falls back to master",
			in: ResolveInput{
				Branch:        "rd-42-abc-8.1-do-stuff",
				TicketID:      42,
				ParentID:      17,
				TargetVersion: "8.1",
				HeadRef:       "refs/heads/master",
				Remote:        "origin",
				RemoteBranches: []string{
					"origin/master",
				},
			},
			want: Resolution{
				Action: ActionCreate,
				Branch: "rd-42-abc-8.1-do-stuff",
				Base:   "origin/master",
				Notes:  []string{"This ticket has parent #17 but no branch for it exists"},
			},
		},
		{
			name: "detached head never matches",
			in: ResolveInput{
				Branch:        "rd-42-abc-8.1-do-stuff",
				TicketID:      42,
				TargetVersion: "8.1",
				HeadRef:       "",
				Remote:        "origin",
				RemoteBranches: []string{
					"origin/master",
				},
			},
			want: Resolution{
				Action: ActionCreate,
				Branch: "rd-42-abc-8.1-do-stuff",
				Base:   "origin/master",
				Notes:  []string{"This ticket has no parent"},
			},
		},
		{
			name: "non-origin remote",
			in: ResolveInput{
				Branch:        "rd-42-abc-8.1-do-stuff",
				TicketID:      42,
				TargetVersion: "8.1",
				HeadRef:       "refs/heads/master",
				Remote:        "upstream",
				RemoteBranches: []string{
					"upstream/master",
					"upstream/wab-8.1",
				},
			},
			want: Resolution{
				Action: ActionCreate,
				Branch: "rd-42-abc-8.1-do-stuff",
				Base:   "upstream/wab-8.1",
				Notes:  []string{"Using maintenance branch upstream/wab-8.1"},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ResolveBase(tt.in, nil)
			if err != nil {
				t.Fatalf("ResolveBase() error = %v", err)
			}
			if !reflect.DeepEqual(*got, tt.want) {
				t.Errorf("ResolveBase() = %+v, want %+v", *got, tt.want)
			}
		})
	}
}

func TestResolveBaseParentChoice(t *testing.T) {
	in := ResolveInput{
		Branch:        "rd-42-abc-8.1-do-stuff",
		TicketID:      42,
		ParentID:      17,
		TargetVersion: "8.1",
		HeadRef:       "refs/heads/master",
		Remote:        "origin",
		RemoteBranches: []string{
			"origin/master",
			"origin/rd-17-def-8.1-parent-work",
		},
	}

	t.Run("chooser sees master as the default", func(t *testing.T) {
		var gotOptions []string
		choose := func(title string, options []string) (int, error) {
			gotOptions = options
			return 0, nil
		}

		res, err := ResolveBase(in, choose)
		if err != nil {
			t.Fatalf("ResolveBase() error = %v", err)
		}

		wantOptions := []string{"origin/master", "origin/rd-17-def-8.1-parent-work"}
		if !reflect.DeepEqual(gotOptions, wantOptions) {
			t.Errorf("chooser options = %v, want %v", gotOptions, wantOptions)
		}
		if res.Base != "origin/master" {
			t.Errorf("Base = %q, want %q", res.Base, "origin/master")
		}
	})

	t.Run("selecting the parent branch", func(t *testing.T) {
		choose := func(title string, options []string) (int, error) {
			return 1, nil
		}

		res, err := ResolveBase(in, choose)
		if err != nil {
			t.Fatalf("ResolveBase() error = %v", err)
		}
		if res.Base != "origin/rd-17-def-8.1-parent-work" {
			t.Errorf("Base = %q, want parent branch", res.Base)
		}
	})

	t.Run("nil chooser defaults to master", func(t *testing.T) {
		res, err := ResolveBase(in, nil)
		if err != nil {
			t.Fatalf("ResolveBase() error = %v", err)
		}
		if res.Base != "origin/master" {
			t.Errorf("Base = %q, want %q", res.Base, "origin/master")
		}
	})

	t.Run("chooser error propagates", func(t *testing.T) {
		wantErr := errors.New("prompt aborted")
		choose := func(title string, options []string) (int, error) {
			return 0, wantErr
		}

		if _, err := ResolveBase(in, choose); !errors.Is(err, wantErr) {
			t.Errorf("ResolveBase() error = %v, want %v", err, wantErr)
		}
	})

	t.Run("out of range selection fails", func(t *testing.T) {
		choose := func(title string, options []string) (int, error) {
			return 5, nil
		}

		if _, err := ResolveBase(in, choose); err == nil {
			t.Error("ResolveBase() expected error for out-of-range selection")
		}
	})
}

func TestResolveBaseMaintenanceBeatsParent(t *testing.T) {
	// When both a maintenance branch and a parent branch exist, the
	// maintenance branch wins and the chooser never runs.
	in := ResolveInput{
		Branch:        "rd-42-abc-8.1-do-stuff",
		TicketID:      42,
		ParentID:      17,
		TargetVersion: "8.1",
		HeadRef:       "refs/heads/master",
		Remote:        "origin",
		RemoteBranches: []string{
			"origin/master",
			"origin/wab-8.1",
			"origin/rd-17-def-8.1-parent-work",
		},
	}

	called := false
	choose := func(title string, options []string) (int, error) {
		called = true
		return 0, nil
	}

	res, err := ResolveBase(in, choose)
	if err != nil {
		t.Fatalf("ResolveBase() error = %v", err)
	}
	if res.Base != "origin/wab-8.1" {
		t.Errorf("Base = %q, want %q", res.Base, "origin/wab-8.1")
	}
	if called {
		t.Error("chooser should not run when a maintenance branch exists")
	}
}
