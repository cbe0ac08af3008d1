package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/aretw0/wayfarer"
	"github.com/aretw0/wayfarer/internal/presentation/tui"
	"github.com/aretw0/wayfarer/pkg/auth"
	"github.com/aretw0/wayfarer/pkg/domain"
)

// PlanOptions configures the interactive trip wizard.
type PlanOptions struct {
	// SessionID resumes (or creates) a named session. Empty starts a fresh one.
	SessionID string
	// Restart asks for destination and interests again on a resumed session.
	Restart bool
	Render  tui.Renderer
}

// RunPlan walks the user through login, destination, interests and place selection.
// Every answer is persisted, so an interrupted plan can be resumed with the same session ID.
func RunPlan(ctx context.Context, p *wayfarer.Planner, prompt *Prompter, out io.Writer, opts PlanOptions) (*domain.Step3Data, error) {
	if opts.Render == nil {
		opts.Render = tui.PlainRenderer
	}

	sess, err := openSession(ctx, p, opts.SessionID)
	if err != nil {
		return nil, err
	}
	printSystemMessage(out, "Session '%s' active.", sess.ID)

	if !sess.Auth.Authenticated {
		if sess, err = authenticate(ctx, p, prompt, out, sess.ID); err != nil {
			return nil, err
		}
	}
	tui.Success(out, "Welcome, %s!", auth.DisplayName(sess.Auth))

	var step1 domain.Step1Data
	hasStep1, _ := sess.Record(domain.RecordStep1, &step1)
	if !hasStep1 || opts.Restart {
		if err := chooseDestination(ctx, p, prompt, out, sess.ID); err != nil {
			return nil, err
		}
	}

	var step2 domain.Step2Data
	hasStep2, _ := sess.Record(domain.RecordStep2, &step2)
	if !hasStep2 || !hasStep1 || opts.Restart {
		if err := chooseInterests(ctx, p, prompt, out, sess.ID); err != nil {
			return nil, err
		}
	}

	return selectPlaces(ctx, p, prompt, out, sess.ID, opts.Render)
}

func openSession(ctx context.Context, p *wayfarer.Planner, sessionID string) (*domain.Session, error) {
	if sessionID == "" {
		return p.StartSession(ctx)
	}
	return p.Sessions().LoadOrStart(ctx, sessionID)
}

func authenticate(ctx context.Context, p *wayfarer.Planner, prompt *Prompter, out io.Writer, sessionID string) (*domain.Session, error) {
	for {
		mode, err := prompt.AskDefault("Log in or sign up? (l/s)", "l")
		if err != nil {
			return nil, err
		}

		var sess *domain.Session
		switch strings.ToLower(mode) {
		case "s", "signup", "sign up":
			form, err := askSignUp(prompt)
			if err != nil {
				return nil, err
			}
			sess, err = p.SignUp(ctx, sessionID, form)
			if err == nil {
				return sess, nil
			}
			if !retryable(out, err) {
				return nil, err
			}
		default:
			form, err := askLogin(prompt)
			if err != nil {
				return nil, err
			}
			sess, err = p.Login(ctx, sessionID, form)
			if err == nil {
				return sess, nil
			}
			if !retryable(out, err) {
				return nil, err
			}
		}
	}
}

func askLogin(prompt *Prompter) (auth.LoginForm, error) {
	var form auth.LoginForm
	var err error
	if form.Email, err = prompt.Ask("Email"); err != nil {
		return form, err
	}
	form.Password, err = prompt.Secret("Password")
	return form, err
}

func askSignUp(prompt *Prompter) (auth.SignUpForm, error) {
	var form auth.SignUpForm
	fields := []struct {
		label  string
		dst    *string
		secret bool
	}{
		{"Name", &form.Name, false},
		{"Phone", &form.Phone, false},
		{"Email", &form.Email, false},
		{"Password", &form.Password, true},
		{"Confirm password", &form.ConfirmPassword, true},
	}
	for _, f := range fields {
		var err error
		if f.secret {
			*f.dst, err = prompt.Secret(f.label)
		} else {
			*f.dst, err = prompt.Ask(f.label)
		}
		if err != nil {
			return form, err
		}
	}
	return form, nil
}

func chooseDestination(ctx context.Context, p *wayfarer.Planner, prompt *Prompter, out io.Writer, sessionID string) error {
	cities := p.Destinations()
	fmt.Fprintln(out, "\nWhere do you want to go?")
	printOptions(out, cities)

	for {
		answer, err := prompt.Ask("Destination (number or name)")
		if err != nil {
			return err
		}
		_, err = p.SubmitDestination(ctx, sessionID, pick(answer, cities))
		if err == nil {
			return nil
		}
		if !retryable(out, err) {
			return err
		}
	}
}

func chooseInterests(ctx context.Context, p *wayfarer.Planner, prompt *Prompter, out io.Writer, sessionID string) error {
	sess, err := p.Session(ctx, sessionID)
	if err != nil {
		return err
	}
	var step1 domain.Step1Data
	if _, err := sess.Record(domain.RecordStep1, &step1); err != nil {
		return err
	}

	categories := p.Categories(step1.Destination)
	fmt.Fprintf(out, "\nWhat are you interested in around %s?\n", step1.Destination)
	printOptions(out, categories)

	for {
		answer, err := prompt.Ask("Interests (comma separated numbers or names)")
		if err != nil {
			return err
		}
		var interests []string
		for _, part := range strings.Split(answer, ",") {
			if part = strings.TrimSpace(part); part != "" {
				interests = append(interests, pick(part, categories))
			}
		}
		_, err = p.SubmitInterests(ctx, sessionID, interests)
		if err == nil {
			return nil
		}
		if !retryable(out, err) {
			return err
		}
	}
}

func selectPlaces(ctx context.Context, p *wayfarer.Planner, prompt *Prompter, out io.Writer, sessionID string, render tui.Renderer) (*domain.Step3Data, error) {
	view, err := p.EnterPlaces(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	for {
		rendered, err := render(tui.PlacesMarkdown(view))
		if err != nil {
			return nil, err
		}
		fmt.Fprintln(out, rendered)

		answer, err := prompt.Ask("Toggle [number], [a]ll, [d]one, [q]uit")
		if err != nil {
			return nil, err
		}

		switch strings.ToLower(answer) {
		case "q", "quit":
			printSystemMessage(out, "Draft saved. Resume with --session %s", sessionID)
			return nil, nil
		case "a", "all":
			view, err = p.ToggleAllPlaces(ctx, sessionID)
		case "d", "done":
			data, err := p.Advance(ctx, sessionID)
			if err == nil {
				tui.Success(out, "Trip saved with %d places: %s", len(data.Places), strings.Join(data.Places, ", "))
				return data, nil
			}
			if !retryable(out, err) {
				return nil, err
			}
			continue
		default:
			order := tui.DisplayOrder(view)
			n, convErr := strconv.Atoi(answer)
			if convErr != nil || n < 1 || n > len(order) {
				tui.Warning(out, "Enter a number between 1 and %d", len(order))
				continue
			}
			view, err = p.TogglePlace(ctx, sessionID, order[n-1])
		}
		if err != nil {
			return nil, err
		}
	}
}

// retryable prints user errors and reports whether the question can be asked again.
func retryable(out io.Writer, err error) bool {
	var verr *auth.ValidationError
	switch {
	case errors.As(err, &verr):
		tui.Failure(out, "%s", verr.Message)
		return true
	case errors.Is(err, domain.ErrInvalidInput), errors.Is(err, domain.ErrEmptySelection):
		tui.Failure(out, "%s", err)
		return true
	}
	return false
}

func printOptions(out io.Writer, options []string) {
	for i, o := range options {
		fmt.Fprintf(out, "  %d. %s\n", i+1, o)
	}
}

// pick resolves a 1-based index into options; anything else is returned as typed.
func pick(answer string, options []string) string {
	if n, err := strconv.Atoi(answer); err == nil && n >= 1 && n <= len(options) {
		return options[n-1]
	}
	return answer
}
