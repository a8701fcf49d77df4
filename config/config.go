package config

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/gdamore/tcell/v2"
)

type Config struct {
	Theme           string `json:"theme"`
	TreeWidth       int    `json:"tree_width"`
	UndoLimit       int    `json:"undo_limit"`
	AutosaveDelayMS int    `json:"autosave_delay_ms"`
	FocusLevel      int    `json:"focus_level"`
	ShowProgress    bool   `json:"show_progress"`
	DimCompleted    bool   `json:"dim_completed"`
}

type ColorScheme struct {
	Name       string
	Background tcell.Color
	Foreground tcell.Color
	Selection  tcell.Color
	Muted      tcell.Color

	Bullet      tcell.Color
	FoldMarker  tcell.Color
	IndentGuide tcell.Color
	CodeSpanBg  tcell.Color

	TodoPending  tcell.Color
	TodoProgress tcell.Color
	TodoDone     tcell.Color
	TodoUnknown  tcell.Color

	StatusBarBg     tcell.Color
	StatusBarFg     tcell.Color
	StatusBarModeBg tcell.Color

	TabBarBg       tcell.Color
	TabBarFg       tcell.Color
	TabBarActiveBg tcell.Color
	TabBarActiveFg tcell.Color

	TreeHeaderFg    tcell.Color
	TreeDirFg       tcell.Color
	TreeFileFg      tcell.Color
	TreeSelectionBg tcell.Color
	TreeBorder      tcell.Color

	DialogBg      tcell.Color
	DialogFg      tcell.Color
	DialogInputBg tcell.Color
}

var Themes = map[string]*ColorScheme{
	"dark": {
		Name:            "Dark",
		Background:      tcell.ColorBlack,
		Foreground:      tcell.ColorWhite,
		Selection:       tcell.ColorDarkBlue,
		Muted:           tcell.ColorGray,
		Bullet:          tcell.ColorGray,
		FoldMarker:      tcell.ColorYellow,
		IndentGuide:     tcell.ColorDimGray,
		CodeSpanBg:      tcell.ColorDarkSlateGray,
		TodoPending:     tcell.ColorWhite,
		TodoProgress:    tcell.ColorYellow,
		TodoDone:        tcell.ColorGreen,
		TodoUnknown:     tcell.ColorFuchsia,
		StatusBarBg:     tcell.ColorDarkBlue,
		StatusBarFg:     tcell.ColorWhite,
		StatusBarModeBg: tcell.ColorBlue,
		TabBarBg:        tcell.ColorBlack,
		TabBarFg:        tcell.ColorGray,
		TabBarActiveBg:  tcell.ColorDarkBlue,
		TabBarActiveFg:  tcell.ColorWhite,
		TreeHeaderFg:    tcell.ColorYellow,
		TreeDirFg:       tcell.ColorBlue,
		TreeFileFg:      tcell.ColorWhite,
		TreeSelectionBg: tcell.ColorDarkBlue,
		TreeBorder:      tcell.ColorGray,
		DialogBg:        tcell.ColorBlack,
		DialogFg:        tcell.ColorWhite,
		DialogInputBg:   tcell.ColorDarkBlue,
	},
	"light": {
		Name:            "Light",
		Background:      tcell.ColorWhite,
		Foreground:      tcell.ColorBlack,
		Selection:       tcell.ColorLightBlue,
		Muted:           tcell.ColorGray,
		Bullet:          tcell.ColorGray,
		FoldMarker:      tcell.ColorBlue,
		IndentGuide:     tcell.ColorLightGray,
		CodeSpanBg:      tcell.ColorLightGray,
		TodoPending:     tcell.ColorBlack,
		TodoProgress:    tcell.ColorOrange,
		TodoDone:        tcell.ColorDarkGreen,
		TodoUnknown:     tcell.ColorPurple,
		StatusBarBg:     tcell.ColorLightBlue,
		StatusBarFg:     tcell.ColorBlack,
		StatusBarModeBg: tcell.ColorBlue,
		TabBarBg:        tcell.ColorWhite,
		TabBarFg:        tcell.ColorGray,
		TabBarActiveBg:  tcell.ColorLightBlue,
		TabBarActiveFg:  tcell.ColorBlack,
		TreeHeaderFg:    tcell.ColorBlue,
		TreeDirFg:       tcell.ColorBlue,
		TreeFileFg:      tcell.ColorBlack,
		TreeSelectionBg: tcell.ColorLightBlue,
		TreeBorder:      tcell.ColorGray,
		DialogBg:        tcell.ColorWhite,
		DialogFg:        tcell.ColorBlack,
		DialogInputBg:   tcell.ColorLightGray,
	},
	"monokai": {
		Name:            "Monokai",
		Background:      tcell.NewRGBColor(39, 40, 34),
		Foreground:      tcell.NewRGBColor(248, 248, 242),
		Selection:       tcell.NewRGBColor(73, 72, 62),
		Muted:           tcell.NewRGBColor(144, 144, 128),
		Bullet:          tcell.NewRGBColor(144, 144, 128),
		FoldMarker:      tcell.NewRGBColor(230, 219, 116),
		IndentGuide:     tcell.NewRGBColor(70, 71, 60),
		CodeSpanBg:      tcell.NewRGBColor(56, 56, 48),
		TodoPending:     tcell.NewRGBColor(248, 248, 242),
		TodoProgress:    tcell.NewRGBColor(230, 219, 116),
		TodoDone:        tcell.NewRGBColor(166, 226, 46),
		TodoUnknown:     tcell.NewRGBColor(249, 38, 114),
		StatusBarBg:     tcell.NewRGBColor(73, 72, 62),
		StatusBarFg:     tcell.NewRGBColor(248, 248, 242),
		StatusBarModeBg: tcell.NewRGBColor(102, 217, 239),
		TabBarBg:        tcell.NewRGBColor(39, 40, 34),
		TabBarFg:        tcell.NewRGBColor(144, 144, 128),
		TabBarActiveBg:  tcell.NewRGBColor(73, 72, 62),
		TabBarActiveFg:  tcell.NewRGBColor(248, 248, 242),
		TreeHeaderFg:    tcell.NewRGBColor(249, 38, 114),
		TreeDirFg:       tcell.NewRGBColor(102, 217, 239),
		TreeFileFg:      tcell.NewRGBColor(248, 248, 242),
		TreeSelectionBg: tcell.NewRGBColor(73, 72, 62),
		TreeBorder:      tcell.NewRGBColor(144, 144, 128),
		DialogBg:        tcell.NewRGBColor(39, 40, 34),
		DialogFg:        tcell.NewRGBColor(248, 248, 242),
		DialogInputBg:   tcell.NewRGBColor(73, 72, 62),
	},
	"nord": {
		Name:            "Nord",
		Background:      tcell.NewRGBColor(46, 52, 64),
		Foreground:      tcell.NewRGBColor(236, 239, 244),
		Selection:       tcell.NewRGBColor(67, 76, 94),
		Muted:           tcell.NewRGBColor(76, 86, 106),
		Bullet:          tcell.NewRGBColor(76, 86, 106),
		FoldMarker:      tcell.NewRGBColor(235, 203, 139),
		IndentGuide:     tcell.NewRGBColor(59, 66, 82),
		CodeSpanBg:      tcell.NewRGBColor(59, 66, 82),
		TodoPending:     tcell.NewRGBColor(236, 239, 244),
		TodoProgress:    tcell.NewRGBColor(235, 203, 139),
		TodoDone:        tcell.NewRGBColor(163, 190, 140),
		TodoUnknown:     tcell.NewRGBColor(180, 142, 173),
		StatusBarBg:     tcell.NewRGBColor(67, 76, 94),
		StatusBarFg:     tcell.NewRGBColor(236, 239, 244),
		StatusBarModeBg: tcell.NewRGBColor(136, 192, 208),
		TabBarBg:        tcell.NewRGBColor(46, 52, 64),
		TabBarFg:        tcell.NewRGBColor(76, 86, 106),
		TabBarActiveBg:  tcell.NewRGBColor(67, 76, 94),
		TabBarActiveFg:  tcell.NewRGBColor(236, 239, 244),
		TreeHeaderFg:    tcell.NewRGBColor(136, 192, 208),
		TreeDirFg:       tcell.NewRGBColor(136, 192, 208),
		TreeFileFg:      tcell.NewRGBColor(236, 239, 244),
		TreeSelectionBg: tcell.NewRGBColor(67, 76, 94),
		TreeBorder:      tcell.NewRGBColor(76, 86, 106),
		DialogBg:        tcell.NewRGBColor(46, 52, 64),
		DialogFg:        tcell.NewRGBColor(236, 239, 244),
		DialogInputBg:   tcell.NewRGBColor(67, 76, 94),
	},
	"gruvbox": {
		Name:            "Gruvbox Dark",
		Background:      tcell.NewRGBColor(40, 40, 40),
		Foreground:      tcell.NewRGBColor(235, 219, 178),
		Selection:       tcell.NewRGBColor(60, 56, 54),
		Muted:           tcell.NewRGBColor(146, 131, 116),
		Bullet:          tcell.NewRGBColor(146, 131, 116),
		FoldMarker:      tcell.NewRGBColor(250, 189, 47),
		IndentGuide:     tcell.NewRGBColor(80, 73, 69),
		CodeSpanBg:      tcell.NewRGBColor(50, 48, 47),
		TodoPending:     tcell.NewRGBColor(235, 219, 178),
		TodoProgress:    tcell.NewRGBColor(250, 189, 47),
		TodoDone:        tcell.NewRGBColor(184, 187, 38),
		TodoUnknown:     tcell.NewRGBColor(211, 134, 155),
		StatusBarBg:     tcell.NewRGBColor(60, 56, 54),
		StatusBarFg:     tcell.NewRGBColor(235, 219, 178),
		StatusBarModeBg: tcell.NewRGBColor(184, 187, 38),
		TabBarBg:        tcell.NewRGBColor(40, 40, 40),
		TabBarFg:        tcell.NewRGBColor(146, 131, 116),
		TabBarActiveBg:  tcell.NewRGBColor(60, 56, 54),
		TabBarActiveFg:  tcell.NewRGBColor(235, 219, 178),
		TreeHeaderFg:    tcell.NewRGBColor(254, 128, 25),
		TreeDirFg:       tcell.NewRGBColor(131, 165, 152),
		TreeFileFg:      tcell.NewRGBColor(235, 219, 178),
		TreeSelectionBg: tcell.NewRGBColor(60, 56, 54),
		TreeBorder:      tcell.NewRGBColor(102, 92, 84),
		DialogBg:        tcell.NewRGBColor(40, 40, 40),
		DialogFg:        tcell.NewRGBColor(235, 219, 178),
		DialogInputBg:   tcell.NewRGBColor(60, 56, 54),
	},
}

func Default() *Config {
	return &Config{
		Theme:           "monokai",
		TreeWidth:       24,
		UndoLimit:       50,
		AutosaveDelayMS: 300,
		FocusLevel:      2,
		ShowProgress:    true,
		DimCompleted:    true,
	}
}

func (c *Config) GetTheme() *ColorScheme {
	theme, ok := Themes[c.Theme]
	if !ok {
		return Themes["monokai"]
	}
	return theme
}

func ConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "loglog", "settings.json")
}

func Load() (*Config, error) {
	path := ConfigPath()
	data, err := os.ReadFile(path)
	if err != nil {
		// Missing file means first run; defaults apply.
		if os.IsNotExist(err) {
			return Default(), nil
		}
		return nil, err
	}

	cfg := Default()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	if cfg.UndoLimit <= 0 {
		cfg.UndoLimit = 50
	}
	if cfg.AutosaveDelayMS <= 0 {
		cfg.AutosaveDelayMS = 300
	}
	return cfg, nil
}

func (c *Config) Save() error {
	path := ConfigPath()
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}
