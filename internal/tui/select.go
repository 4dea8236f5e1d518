// Package tui provides the interactive discovery browser.
package tui

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/ansi"
	reflowtruncate "github.com/muesli/reflow/truncate"

	"github.com/lepinkainen/unroll/internal/tmdb"
)

const (
	defaultListWidth  = 72
	defaultListHeight = 20
)

var runProgram = func(m tea.Model) (tea.Model, error) {
	return tea.NewProgram(m).Run()
}

// BrowseAction is what the user chose to do with the current page.
type BrowseAction int

const (
	// ActionNone indicates no action was taken.
	ActionNone BrowseAction = iota
	// ActionSelected indicates the user picked a movie.
	ActionSelected
	// ActionNextPage asks for the following discovery page.
	ActionNextPage
	// ActionPrevPage asks for the preceding discovery page.
	ActionPrevPage
	// ActionQuit ends the session.
	ActionQuit
)

// BrowseResult holds the outcome of one Browse call.
type BrowseResult struct {
	Action    BrowseAction
	Selection *tmdb.Movie
}

// Card is a movie plus the display data resolved by the caller.
type Card struct {
	Movie       tmdb.Movie
	Genres      string
	PosterURL   string
	AvailableOn string
	// ForeignTitle is the original title when the movie is not in the display language.
	ForeignTitle string
}

func (c Card) Title() string {
	return titleWithYear(c.Movie)
}

func (c Card) FilterValue() string {
	return c.Movie.DisplayTitle()
}

func (c Card) Description() string {
	return value(c.Movie.Overview)
}

type itemStyles struct {
	normal        lipgloss.Style
	selected      lipgloss.Style
	genreStyle    lipgloss.Style
	titleStyle    lipgloss.Style
	posterStyle   lipgloss.Style
	metadataStyle lipgloss.Style
	overviewStyle lipgloss.Style
	providerStyle lipgloss.Style
}

func newItemStyles() itemStyles {
	asciiBorder := lipgloss.Border{
		Top:         "-",
		Bottom:      "-",
		Left:        "|",
		Right:       "|",
		TopLeft:     "+",
		TopRight:    "+",
		BottomLeft:  "+",
		BottomRight: "+",
	}

	container := lipgloss.NewStyle().
		Border(asciiBorder).
		BorderForeground(lipgloss.Color("62")).
		Padding(0, 1).
		Foreground(lipgloss.Color("252"))

	return itemStyles{
		normal: container,
		selected: container.Copy().
			BorderForeground(lipgloss.Color("214")).
			Foreground(lipgloss.Color("230")).
			Background(lipgloss.Color("237")),
		genreStyle: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("110")),
		titleStyle: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("254")),
		posterStyle: lipgloss.NewStyle().
			Foreground(lipgloss.Color("67")).
			Underline(true),
		metadataStyle: lipgloss.NewStyle().
			Foreground(lipgloss.Color("247")).
			Faint(true),
		overviewStyle: lipgloss.NewStyle().
			Foreground(lipgloss.Color("248")),
		providerStyle: lipgloss.NewStyle().
			Foreground(lipgloss.Color("178")),
	}
}

type cardDelegate struct {
	styles itemStyles
}

func newDelegate() cardDelegate {
	return cardDelegate{styles: newItemStyles()}
}

func (d cardDelegate) Height() int                         { return 5 }
func (d cardDelegate) Spacing() int                        { return 1 }
func (d cardDelegate) Update(tea.Msg, *list.Model) tea.Cmd { return nil }

func (d cardDelegate) Render(w io.Writer, m list.Model, idx int, item list.Item) {
	card, ok := item.(Card)
	if !ok {
		return
	}

	width := m.Width() - 4
	genreLine := d.styles.genreStyle.Render(fmt.Sprintf("[%s]", strings.ToUpper(orDash(card.Genres))))
	metadataLine := d.styles.metadataStyle.Render(formatMetadata(card.Movie, width))
	titleLine := d.styles.titleStyle.Render(strings.ToUpper(titleWithYear(card.Movie)))
	posterLine := d.styles.posterStyle.Render(truncate(card.PosterURL, width))
	overviewLine := d.styles.overviewStyle.Render(truncate(value(card.Movie.Overview), width))

	content := lipgloss.JoinVertical(lipgloss.Left, genreLine, metadataLine, titleLine, posterLine, overviewLine)

	container := d.styles.normal
	if idx == m.Index() {
		container = d.styles.selected
	}
	_, _ = fmt.Fprint(w, container.Render(content))
}

// RenderCard renders a full movie card for non-interactive output.
func RenderCard(card Card, width int) string {
	styles := newItemStyles()
	if width <= 0 {
		width = defaultListWidth
	}
	inner := width - 4

	lines := []string{
		styles.titleStyle.Render(titleWithYear(card.Movie)),
	}
	if card.ForeignTitle != "" {
		lines = append(lines, styles.metadataStyle.Render(truncate("Original title: "+card.ForeignTitle, inner)))
	}
	lines = append(lines, styles.metadataStyle.Render(formatMetadata(card.Movie, inner)))
	if card.Genres != "" {
		lines = append(lines, styles.genreStyle.Render(card.Genres))
	}
	if tagline := value(card.Movie.Tagline); tagline != "" {
		lines = append(lines, styles.overviewStyle.Italic(true).Render(tagline))
	}
	if overview := value(card.Movie.Overview); overview != "" {
		lines = append(lines, styles.overviewStyle.Width(inner).Render(overview))
	}
	if card.PosterURL != "" {
		lines = append(lines, styles.posterStyle.Render(card.PosterURL))
	}
	lines = append(lines, styles.providerStyle.Render("Available on: "+orDash(card.AvailableOn)))

	return styles.normal.Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}

type model struct {
	list    list.Model
	heading string
	page    int
	pages   int
	result  BrowseResult
}

func newModel(heading string, page, pages int, cards []Card) *model {
	listItems := make([]list.Item, len(cards))
	for i, card := range cards {
		listItems[i] = card
	}

	l := list.New(listItems, newDelegate(), defaultListWidth, defaultListHeight)
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(false)
	l.SetShowHelp(false)
	l.SetShowTitle(false)
	l.SetShowPagination(false)
	l.DisableQuitKeybindings()
	l.Styles.NoItems = lipgloss.NewStyle()

	return &model{
		list:    l,
		heading: heading,
		page:    page,
		pages:   pages,
		result:  BrowseResult{Action: ActionNone},
	}
}

func (m *model) Init() tea.Cmd { return nil }

func (m *model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "enter":
			if selected, ok := m.list.SelectedItem().(Card); ok {
				movie := selected.Movie
				m.result = BrowseResult{Action: ActionSelected, Selection: &movie}
				return m, tea.Quit
			}
		case "n", "right":
			if m.pages == 0 || m.page < m.pages {
				m.result = BrowseResult{Action: ActionNextPage}
				return m, tea.Quit
			}
		case "p", "left":
			if m.page > 1 {
				m.result = BrowseResult{Action: ActionPrevPage}
				return m, tea.Quit
			}
		case "ctrl+c", "q", "esc":
			m.result = BrowseResult{Action: ActionQuit}
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		width := clamp(defaultListWidth, msg.Width-4, 40)
		height := clamp(defaultListHeight, msg.Height-6, 5)
		m.list.SetSize(width, height)
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m *model) View() string {
	header := headerStyle.Render(m.heading)
	status := statusStyle.Render(pageStatus(m.page, m.pages))
	help := helpStyle.Render("Up/Down navigate | Enter details | n/p page | q quit")
	return lipgloss.JoinVertical(lipgloss.Left, header, m.list.View(), status, help)
}

var (
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("214")).
			MarginBottom(1)

	statusStyle = lipgloss.NewStyle().
			MarginTop(1).
			Padding(0, 2).
			Background(lipgloss.Color("62")).
			Foreground(lipgloss.Color("230")).
			Bold(true)

	helpStyle = lipgloss.NewStyle().
			MarginTop(1).
			Foreground(lipgloss.Color("244"))
)

// Browse shows one page of discovery results and reports the chosen action.
// An empty page returns ActionQuit without starting the program.
func Browse(heading string, page *tmdb.MoviePage, cards []Card) (BrowseResult, error) {
	if len(cards) == 0 {
		return BrowseResult{Action: ActionQuit}, nil
	}

	current, total := 1, 0
	if page != nil {
		current = page.Page
		if page.TotalPages != nil {
			total = *page.TotalPages
		}
	}

	finalModel, err := runProgram(newModel(heading, current, total, cards))
	if err != nil {
		return BrowseResult{}, err
	}
	if typed, ok := finalModel.(*model); ok {
		return typed.result, nil
	}
	return BrowseResult{}, fmt.Errorf("unexpected program result")
}

func pageStatus(page, pages int) string {
	if pages > 0 {
		return fmt.Sprintf(" Page %d of %d ", page, pages)
	}
	return fmt.Sprintf(" Page %d ", page)
}

func titleWithYear(movie tmdb.Movie) string {
	title := movie.DisplayTitle()
	if title == "" {
		title = "Untitled"
	}
	if year := movie.ReleaseYear(); year != "" {
		return fmt.Sprintf("%s (%s)", title, year)
	}
	return title
}

// formatMetadata builds the runtime, language and release line.
func formatMetadata(movie tmdb.Movie, availableWidth int) string {
	var parts []string

	if movie.Runtime != nil && *movie.Runtime > 0 {
		parts = append(parts, fmt.Sprintf("%dm", *movie.Runtime))
	}
	if lang := value(movie.OriginalLanguage); lang != "" {
		parts = append(parts, strings.ToUpper(lang))
	}
	if date := value(movie.ReleaseDate); date != "" {
		parts = append(parts, date)
	}

	if len(parts) == 0 {
		return "No metadata available"
	}
	return truncate(strings.Join(parts, " | "), availableWidth)
}

// truncate collapses whitespace and cuts value to width terminal cells.
func truncate(value string, width int) string {
	value = strings.Join(strings.Fields(value), " ")
	if width <= 0 || ansi.PrintableRuneWidth(value) <= width {
		return value
	}
	if width <= 3 {
		return reflowtruncate.String(value, uint(width))
	}
	return reflowtruncate.StringWithTail(value, uint(width), "...")
}

func value(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

func clamp(defaultValue, available, minimum int) int {
	width := defaultValue
	if available > 0 && available < defaultValue {
		width = available
	}
	if width < minimum {
		width = minimum
	}
	return width
}
