package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/napolitain/idle-tycoon/internal/clock"
	"github.com/napolitain/idle-tycoon/internal/currency"
	"github.com/napolitain/idle-tycoon/internal/economy"
	"github.com/napolitain/idle-tycoon/internal/game"
	"github.com/napolitain/idle-tycoon/internal/save"
)

var playLogFile string

func newPlayCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "play",
		Short: "Play in the terminal",
		RunE:  runPlay,
	}
	cmd.Flags().StringVar(&playLogFile, "log-file", "", "Write logs to this file while playing")
	return cmd
}

func runPlay(cmd *cobra.Command, args []string) error {
	var logOut io.Writer = io.Discard
	if playLogFile != "" {
		f, err := os.OpenFile(playLogFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return err
		}
		defer f.Close()
		logOut = f
	}

	e, err := openEnv(logOut)
	if err != nil {
		return err
	}
	defer e.Close()

	ctx := context.Background()
	g, _ := e.loadGame(ctx, clock.Real{})
	m := newPlayModel(g, e.saves, e.cfg.TickInterval, e.cfg.AutosaveInterval)
	g.Subscribe(m.onEvent)
	m.offline = g.Resume()

	if _, err := tea.NewProgram(m, tea.WithAltScreen()).Run(); err != nil {
		return err
	}
	if err := e.saves.Flush(ctx, g.Snapshot()); err != nil {
		return fmt.Errorf("final save: %w", err)
	}
	return nil
}

var (
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("14"))
	balanceStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("10"))
	selectedStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("11"))
	dimStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	warnStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	boxStyle      = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
)

type tickMsg time.Time

type playModel struct {
	game     *game.Game
	saves    *save.Manager
	interval time.Duration
	autosave *game.Scheduler
	last     time.Time
	selected int
	status   string
	offline  economy.OfflineReport
}

func newPlayModel(g *game.Game, saves *save.Manager, tick, autosave time.Duration) *playModel {
	return &playModel{
		game:     g,
		saves:    saves,
		interval: tick,
		autosave: game.NewScheduler(autosave),
		last:     time.Now(),
	}
}

// onEvent surfaces the events worth a status line
func (m *playModel) onEvent(ev game.Event) {
	switch ev.Type {
	case game.EventTierUnlocked:
		if cfg, ok := m.game.Catalog().TryGetTierConfig(ev.TierID); ok {
			m.status = "Unlocked " + cfg.Name
		}
	case game.EventOfflineProgress:
		m.offline = ev.Offline
	}
}

func (m *playModel) tick() tea.Cmd {
	return tea.Tick(m.interval, func(t time.Time) tea.Msg { return tickMsg(t) })
}

func (m *playModel) Init() tea.Cmd {
	return m.tick()
}

func (m *playModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tickMsg:
		now := time.Time(msg)
		dt := now.Sub(m.last).Seconds()
		m.last = now
		m.game.Tick(dt)
		if m.autosave.Advance(dt) {
			if err := m.saves.Save(context.Background(), m.game.Snapshot()); err != nil {
				m.status = "Save failed: " + err.Error()
			}
		}
		return m, m.tick()

	case tea.KeyMsg:
		return m, m.handleKey(msg.String())
	}
	return m, nil
}

func (m *playModel) selectedTier() int {
	units := m.game.Units()
	if len(units) == 0 {
		return 0
	}
	m.selected = max(0, min(m.selected, len(units)-1))
	return units[m.selected].TierID()
}

func (m *playModel) handleKey(key string) tea.Cmd {
	tier := m.selectedTier()
	switch key {
	case "q", "ctrl+c", "esc":
		return tea.Quit
	case "up", "k":
		m.selected--
	case "down", "j":
		m.selected++
	case " ", "c":
		m.report(m.game.ManualClick(tier), "Working", "Nothing to click")
	case "b", "enter":
		n, ok := m.game.BuyUnits(tier, m.game.BuyMode())
		m.report(ok, fmt.Sprintf("Bought %d", n), "Can't afford")
	case "m":
		m.status = "Buy mode " + m.game.ToggleBuyMode().String()
	case "h":
		m.report(m.game.HireHuman(tier), "Hired a human", "Can't hire a human")
	case "a":
		m.report(m.game.HireAI(tier), "Hired an AI", "Can't hire an AI")
	case "p":
		m.report(m.game.PayDebt(tier), "Debt paid", "No debt to pay")
	case "u":
		m.report(m.game.UnlockNextTier(), "", "Can't unlock yet")
	case "g":
		up, ok := m.game.Upgrades().CheapestAvailable(m.game.Ledger().HighestUnlockedTierID())
		m.report(ok && m.game.BuyUpgrade(up.ID), "Bought "+up.Name, "Can't buy an upgrade")
	case "P":
		tokens, ok := m.game.CommitPrestige()
		m.report(ok, "Prestiged for "+tokens.String()+" tokens", "No tokens pending")
		if ok {
			m.selected = 0
			if err := m.saves.Flush(context.Background(), m.game.Snapshot()); err != nil {
				m.status = "Save failed: " + err.Error()
			}
		}
	}
	return nil
}

func (m *playModel) report(ok bool, success, failure string) {
	switch {
	case ok && success != "":
		m.status = success
	case !ok:
		m.status = failure
	}
}

func (m *playModel) View() string {
	var b strings.Builder
	l := m.game.Ledger()

	b.WriteString(titleStyle.Render("Idle Tycoon") + "  ")
	b.WriteString(balanceStyle.Render("$" + currency.Humanize(l.Balance())))
	b.WriteString(dimStyle.Render(fmt.Sprintf("  buy %s  tokens %s", m.game.BuyMode(), l.PrestigeCurrency())))
	b.WriteString("\n\n")

	if m.offline.Reportable {
		b.WriteString(boxStyle.Render(fmt.Sprintf("While you were away: +%s", currency.Humanize(m.offline.Earnings))))
		b.WriteString("\n")
	}

	m.selectedTier()
	for i, u := range m.game.Units() {
		b.WriteString(m.unitLine(i == m.selected, u))
		b.WriteString("\n")
	}

	if next, ok := m.game.NextUnlock(); ok {
		b.WriteString(dimStyle.Render(fmt.Sprintf("\nNext: %s for $%s (u)", next.Name, currency.Humanize(next.UnlockCost))))
		b.WriteString("\n")
	}
	p := m.game.Prestige()
	b.WriteString(dimStyle.Render(fmt.Sprintf("Prestige: %s pending, next at $%s (P)",
		p.PendingTokens(), currency.Humanize(p.LifetimeNeededForNextToken()))))
	b.WriteString("\n\n")

	if m.status != "" {
		b.WriteString(m.status + "\n")
	}
	b.WriteString(dimStyle.Render("↑/↓ select  c click  b buy  m mode  h human  a AI  p pay  g upgrade  q quit"))
	return b.String()
}

func (m *playModel) unitLine(selected bool, u *economy.ProductionUnit) string {
	cost, n, _ := m.game.Quote(u.TierID())
	bar := progressBar(u.Progress(), 20)

	mode := u.Mode().String()
	if u.OnStrike() {
		mode = warnStyle.Render("STRIKE")
	} else if debt := u.State().AccruedHumanDebt; debt.IsPositive() {
		mode += warnStyle.Render(" owes $" + currency.Humanize(debt))
	}

	line := fmt.Sprintf("%-18s x%-5d %s  $%-8s %-8s  buy %d for $%s",
		u.Config().Name, u.OwnedCount(), bar,
		currency.Humanize(u.RevenuePerCycle()), mode, n, currency.Humanize(cost))
	if selected {
		return selectedStyle.Render("> " + line)
	}
	return "  " + line
}

func progressBar(p float64, width int) string {
	filled := int(p * float64(width))
	filled = max(0, min(filled, width))
	return "[" + strings.Repeat("█", filled) + strings.Repeat("░", width-filled) + "]"
}
