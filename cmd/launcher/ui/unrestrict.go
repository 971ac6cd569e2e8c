package ui

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"

	"timeblessed/unrestrict"
)

type unrestrictTickMsg struct{ id int }

// unrestrictState is shared with the flow callbacks so the model copy that
// resolves the flow can pick up the command they produced.
type unrestrictState struct {
	cmd tea.Cmd
}

// UnrestrictModel asks the confirmation questions before a restriction is removed.
type UnrestrictModel struct {
	ID     int
	Pkg    string
	Name   string
	flow   *unrestrict.Flow
	st     *unrestrictState
	wait   int
	bar    progress.Model
	notice string
}

func NewUnrestrictModel(id int, pkg, name string, pool []unrestrict.Question, wait int, opts ...unrestrict.Option) UnrestrictModel {
	st := &unrestrictState{}
	resolved := func(o unrestrict.Outcome) func() {
		return func() {
			st.cmd = func() tea.Msg { return unrestrictResolvedMsg{pkg: pkg, name: name, outcome: o} }
		}
	}
	opts = append([]unrestrict.Option{unrestrict.WithWait(wait)}, opts...)
	flow := unrestrict.New(pool, unrestrict.Callbacks{
		OnUnrestrict: resolved(unrestrict.Unrestricted),
		OnKeep:       resolved(unrestrict.Kept),
	}, opts...)
	return UnrestrictModel{
		ID:   id,
		Pkg:  pkg,
		Name: name,
		flow: flow,
		st:   st,
		wait: wait,
		bar:  progress.New(progress.WithDefaultGradient(), progress.WithoutPercentage(), progress.WithWidth(40)),
	}
}

func (m UnrestrictModel) Flow() *unrestrict.Flow { return m.flow }

func (m UnrestrictModel) Init() tea.Cmd {
	if m.flow.Done() {
		return m.st.cmd
	}
	return m.tick()
}

func (m UnrestrictModel) tick() tea.Cmd {
	id := m.ID
	return tea.Tick(time.Second, func(time.Time) tea.Msg { return unrestrictTickMsg{id: id} })
}

func (m UnrestrictModel) Update(msg tea.Msg) (UnrestrictModel, tea.Cmd) {
	switch msg := msg.(type) {
	case unrestrictTickMsg:
		if msg.id != m.ID || m.flow.Done() {
			return m, nil
		}
		m.flow.Tick()
		if m.flow.Remaining() > 0 {
			return m, m.tick()
		}
		m.notice = ""
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Yes):
			err := m.flow.Confirm()
			switch {
			case errors.Is(err, unrestrict.ErrCountdownActive):
				m.notice = fmt.Sprintf("Take %ds to think it over", m.flow.Remaining())
				return m, nil
			case err != nil:
				return m, nil
			}
			m.notice = ""
			if m.flow.Done() {
				return m, m.st.cmd
			}
			return m, m.tick()
		case key.Matches(msg, keys.No):
			if err := m.flow.Decline(); err != nil {
				return m, nil
			}
			return m, m.st.cmd
		}
	}
	return m, nil
}

func (m UnrestrictModel) View() string {
	if m.flow.Done() {
		return dialogStyle.Render("Done")
	}
	var b strings.Builder
	b.WriteString(titleStyle.Render("Remove restriction for "+m.Name+"?") + "\n\n")
	b.WriteString(blurredStyle.Render(fmt.Sprintf("Question %d of %d", m.flow.Index()+1, m.flow.Total())) + "\n\n")

	q := m.flow.Current()
	b.WriteString(q.Prompt + "\n")
	if q.Hint != "" {
		b.WriteString(blurredStyle.Render(q.Hint) + "\n")
	}
	b.WriteString("\n")

	elapsed := 1.0
	if m.wait > 0 {
		elapsed = float64(m.wait-m.flow.Remaining()) / float64(m.wait)
	}
	b.WriteString(m.bar.ViewAs(elapsed) + "\n\n")

	if m.flow.Ready() {
		yes := "[y] Yes"
		if m.flow.Last() {
			yes = "[y] Yes, remove it"
		}
		b.WriteString(focusedStyle.Render(yes) + "   " + "[n] No, keep it")
	} else {
		b.WriteString(blurredStyle.Render(fmt.Sprintf("Yes available in %ds", m.flow.Remaining())) + "   " + "[n] No, keep it")
	}
	if m.notice != "" {
		b.WriteString("\n\n" + statusMessageStyle(m.notice))
	}
	return dialogStyle.Render(b.String())
}
