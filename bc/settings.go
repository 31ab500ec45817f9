package bc

// BC6HSettings tunes the CPU and GPU BC6H encoders. It is a plain value
// record; construct one of the presets below rather than zero-valuing it,
// since a zero-valued BC6HSettings tries only mode 13 and refines nothing.
type BC6HSettings struct {
	SlowMode           bool
	FastMode           bool
	RefineIterations1P uint32
	RefineIterations2P uint32
	FastSkipThreshold  uint32
}

// BC6HVeryFast is the lowest-quality, highest-throughput BC6H preset.
func BC6HVeryFast() BC6HSettings {
	return BC6HSettings{FastMode: true, RefineIterations1P: 0, RefineIterations2P: 0, FastSkipThreshold: 1}
}

// BC6HFast trades a little throughput for quality over BC6HVeryFast.
func BC6HFast() BC6HSettings {
	return BC6HSettings{FastMode: true, RefineIterations1P: 1, RefineIterations2P: 0, FastSkipThreshold: 2}
}

// BC6HBasic is the default balanced preset.
func BC6HBasic() BC6HSettings {
	return BC6HSettings{RefineIterations1P: 2, RefineIterations2P: 1, FastSkipThreshold: 4}
}

// BC6HSlow favors quality, enabling the exhaustive partition/mode search.
func BC6HSlow() BC6HSettings {
	return BC6HSettings{SlowMode: true, RefineIterations1P: 3, RefineIterations2P: 2, FastSkipThreshold: 8}
}

// BC6HVerySlow is the highest-quality preset.
func BC6HVerySlow() BC6HSettings {
	return BC6HSettings{SlowMode: true, RefineIterations1P: 4, RefineIterations2P: 3, FastSkipThreshold: 32}
}

// BC7Settings tunes the CPU and GPU BC7 encoders.
type BC7Settings struct {
	// RefineIterations holds per-mode refinement counts for modes 0-7.
	RefineIterations [8]uint32

	// ModeSelection enables mode groups: [0]=modes 0/2, [1]=modes 1/3/7,
	// [2]=modes 4/5, [3]=mode 6.
	ModeSelection [4]bool

	SkipMode2 bool

	FastSkipThresholdMode1 uint32
	FastSkipThresholdMode3 uint32
	FastSkipThresholdMode7 uint32

	// Mode45Channel0 selects which channel is encoded with 3 alpha-precision
	// bits (mode 4) vs. the vector group; must be 0 or 3.
	Mode45Channel0 uint32

	RefineIterationsChannel uint32

	// Channels is 3 for opaque-only encoding (alpha forced to 0xFF), or 4 to
	// also encode alpha.
	Channels uint32
}

func bc7Opaque(refine2, refine6, refine7 uint32, threshold1, threshold3 uint32) BC7Settings {
	s := BC7Settings{
		ModeSelection:           [4]bool{true, true, true, true},
		FastSkipThresholdMode1:  threshold1,
		FastSkipThresholdMode3:  threshold3,
		FastSkipThresholdMode7:  threshold3,
		RefineIterationsChannel: 1,
		Channels:                3,
	}
	s.RefineIterations[0] = refine2
	s.RefineIterations[2] = refine2
	s.RefineIterations[6] = refine6
	s.RefineIterations[1] = refine7
	s.RefineIterations[3] = refine7
	s.RefineIterations[7] = refine7
	return s
}

func bc7Alpha(refine2, refine45, refine6, refine7 uint32, threshold1, threshold3 uint32) BC7Settings {
	s := bc7Opaque(refine2, refine6, refine7, threshold1, threshold3)
	s.Channels = 4
	s.RefineIterations[4] = refine45
	s.RefineIterations[5] = refine45
	s.Mode45Channel0 = 3
	return s
}

// BC7OpaqueUltraFast is the fastest opaque-RGB preset (modes 0/2 disabled).
func BC7OpaqueUltraFast() BC7Settings {
	s := bc7Opaque(0, 0, 0, 1, 1)
	s.ModeSelection[0] = false
	s.SkipMode2 = true
	return s
}

// BC7OpaqueVeryFast is a slightly higher-quality opaque preset.
func BC7OpaqueVeryFast() BC7Settings {
	s := bc7Opaque(0, 0, 0, 2, 2)
	s.SkipMode2 = true
	return s
}

// BC7OpaqueFast balances opaque quality and throughput.
func BC7OpaqueFast() BC7Settings { return bc7Opaque(0, 1, 1, 4, 4) }

// BC7OpaqueBasic is the default opaque preset.
func BC7OpaqueBasic() BC7Settings { return bc7Opaque(1, 1, 1, 8, 8) }

// BC7OpaqueSlow is the highest-quality opaque preset.
func BC7OpaqueSlow() BC7Settings { return bc7Opaque(2, 2, 2, 64, 64) }

// BC7AlphaUltraFast is the fastest preset that also encodes alpha.
func BC7AlphaUltraFast() BC7Settings {
	s := bc7Alpha(0, 0, 0, 0, 1, 1)
	s.ModeSelection[0] = false
	s.SkipMode2 = true
	return s
}

// BC7AlphaVeryFast encodes alpha at slightly higher quality.
func BC7AlphaVeryFast() BC7Settings {
	s := bc7Alpha(0, 0, 0, 0, 2, 2)
	s.SkipMode2 = true
	return s
}

// BC7AlphaFast balances alpha quality and throughput.
func BC7AlphaFast() BC7Settings { return bc7Alpha(0, 0, 1, 1, 4, 4) }

// BC7AlphaBasic is the default preset when alpha matters.
func BC7AlphaBasic() BC7Settings { return bc7Alpha(1, 1, 1, 1, 8, 8) }

// BC7AlphaSlow is the highest-quality preset that also encodes alpha.
func BC7AlphaSlow() BC7Settings { return bc7Alpha(2, 2, 2, 2, 64, 64) }
