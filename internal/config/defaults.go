package config

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Source: Source{
			InputDir:  "1012B767/images/lv1",
			Extension: ".jpg",
		},
		Thumbnails: Thumbnails{
			OutputDir:     "optimized-webp",
			Width:         112,
			Height:        112,
			BudgetBytes:   20 * 1024,
			PrimaryLadder: []int{95, 90, 85, 80, 75, 70},
			PrimaryEffort: 6,
			FallbackHigh:  50,
			FallbackLow:   10,
			FallbackStep:  5,
		},
		Animation: Animation{
			Output:          "product-360.gif",
			Width:           150,
			Height:          150,
			FrameDurationMS: 50,
			LoopCount:       0,
			Quality:         85,
			Skip:            0,
		},
	}
}
