package config

import "flag"

var (
	flagConfig     = flag.String("config", "", "Path to config file")
	flagDebug      = flag.Bool("debug", false, "Enable debug logging")
	flagTool       = flag.String("tool", "", "Brush tool (tint, replace, blur, average, smear, weight_draw, ...)")
	flagSize       = flag.Int("size", 0, "Brush radius in pixels")
	flagStrength   = flag.Float64("strength", -1, "Brush strength in [0,1]")
	flagWeight     = flag.Float64("weight", -1, "Target weight for weight_draw")
	flagGroup      = flag.String("group", "", "Vertex group to paint")
	flagMultiFrame = flag.Bool("multiframe", false, "Paint every selected frame")
	flagMask       = flag.Bool("mask", false, "Only paint selected points")
	flagNoNorm     = flag.Bool("no-normalize", false, "Disable weight auto-normalize")
)

// ParseFlags parses command-line flags. Call this early in main().
func ParseFlags() {
	flag.Parse()
}

// ConfigPath returns the explicit config path if provided via --config flag.
func ConfigPath() string {
	return *flagConfig
}

// applyFlags applies CLI flag overrides to the config.
func applyFlags(cfg *Config) {
	if *flagDebug {
		cfg.Logging.Level = "debug"
	}
	if *flagTool != "" {
		cfg.Brush.Tool = *flagTool
	}
	if *flagSize > 0 {
		cfg.Brush.Size = *flagSize
	}
	if *flagStrength >= 0 {
		cfg.Brush.Strength = float32(*flagStrength)
	}
	if *flagWeight >= 0 {
		cfg.Brush.Weight = float32(*flagWeight)
	}
	if *flagGroup != "" {
		cfg.Session.Group = *flagGroup
	}
	if *flagMultiFrame {
		cfg.Session.MultiFrame = true
	}
	if *flagMask {
		cfg.Session.Mask = true
	}
	if *flagNoNorm {
		cfg.Session.AutoNormalize = false
	}
}
