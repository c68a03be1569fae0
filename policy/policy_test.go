package policy

import "testing"

func TestAutoCRF(t *testing.T) {
	tests := []struct {
		name     string
		width    int
		height   int
		nvenc    bool
		expected int
	}{
		{"4K nvenc", 3840, 2160, true, 19},
		{"4K software", 3840, 2160, false, 24},
		{"4K by height only", 1000, 2160, true, 19},
		{"4K by width only", 3840, 100, false, 24},
		{"1080p nvenc", 1920, 1080, true, 21},
		{"1080p software", 1920, 1080, false, 26},
		{"vertical 1080p", 1080, 1920, false, 26},
		{"720p nvenc", 1280, 720, true, 23},
		{"720p software", 1280, 720, false, 28},
		{"tiny", 320, 240, false, 28},
		{"zero dimensions", 0, 0, true, 23},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := AutoCRF(tt.width, tt.height, tt.nvenc)
			if got != tt.expected {
				t.Errorf("AutoCRF(%d, %d, %v) = %d, expected %d",
					tt.width, tt.height, tt.nvenc, got, tt.expected)
			}
		})
	}
}

// The policy is deterministic: repeated calls agree.
func TestAutoCRF_Deterministic(t *testing.T) {
	for i := 0; i < 3; i++ {
		if AutoCRF(2560, 1440, true) != AutoCRF(2560, 1440, true) {
			t.Fatal("AutoCRF is not deterministic")
		}
	}
}
