// Terrain preview tool - interactive height field synthesis with sliders.
//
// Usage: go run ./cmd/terrainpreview
package main

import (
	"fmt"
	"image/color"
	"math/rand/v2"

	rl "github.com/gen2brain/raylib-go/raylib"
	gui "github.com/gen2brain/raylib-go/raygui"

	"github.com/pthm-cable/relief/export"
	"github.com/pthm-cable/relief/telemetry"
	"github.com/pthm-cable/relief/terrain"
)

const (
	windowWidth  = 1000
	windowHeight = 760
	previewSize  = 512
	panelWidth   = windowWidth - previewSize - 30
)

// PreviewParams holds the synthesis parameters exposed as sliders.
type PreviewParams struct {
	SizeExp      int // Field size is 2^SizeExp + 1
	ScaleZ       float32
	Displacement bool // Algorithm toggle: false = noise
	Frequency    float32
	Amplitude    float32
	Octaves      int
	Magnitude    float32
	Roughness    float32
	Seed         uint32
	ShowNormals  bool
}

func defaultParams() PreviewParams {
	return PreviewParams{
		SizeExp:   8,
		ScaleZ:    0.25,
		Frequency: 0.015,
		Amplitude: 1.0,
		Octaves:   6,
		Magnitude: 0.5,
		Roughness: 1.0,
		Seed:      12345,
	}
}

func (p PreviewParams) size() int { return 1<<p.SizeExp + 1 }

func (p PreviewParams) strategy() terrain.Strategy {
	if p.Displacement {
		seed := uint64(p.Seed)
		return terrain.Displacement{
			Magnitude: float64(p.Magnitude),
			Roughness: float64(p.Roughness),
			Source:    rand.NewPCG(seed, seed),
		}
	}
	return terrain.Noise{
		Frequency: float64(p.Frequency),
		Amplitude: float64(p.Amplitude),
		Octaves:   p.Octaves,
	}
}

func (p PreviewParams) yaml() string {
	return fmt.Sprintf(`terrain:
  size: %d
  scale: [1, 1, %.2f]
algorithm: %s
noise:
  frequency: %.3f
  amplitude: %.2f
  iterations: %d
displacement:
  displacement: %.2f
  roughness: %.2f
  seed: %d`,
		p.size(), p.ScaleZ, toggleText(p.Displacement, terrain.StrategyDisplacement, terrain.StrategyNoise),
		p.Frequency, p.Amplitude, p.Octaves, p.Magnitude, p.Roughness, p.Seed)
}

// slider draws a labelled slider bar and returns the new value.
func slider(panelX float32, panelY *float32, label, minText, maxText, valueText string, value, lo, hi float32) float32 {
	rl.DrawText(label, int32(panelX), int32(*panelY), 14, rl.Gray)
	*panelY += 18
	v := gui.SliderBar(
		rl.Rectangle{X: panelX, Y: *panelY, Width: float32(panelWidth - 80), Height: 20},
		minText, maxText,
		value, lo, hi,
	)
	rl.DrawText(valueText, int32(panelX+float32(panelWidth-70)), int32(*panelY+2), 16, rl.DarkGray)
	*panelY += 35
	return v
}

func main() {
	rl.InitWindow(windowWidth, windowHeight, "Terrain Preview")
	defer rl.CloseWindow()
	rl.SetTargetFPS(30)

	params := defaultParams()

	var field *terrain.HeightField
	var stats telemetry.FieldStats
	var genErr error
	var texture rl.Texture2D
	textureSize := 0
	defer func() {
		if textureSize > 0 {
			rl.UnloadTexture(texture)
		}
	}()

	needsRegen := true

	for !rl.WindowShouldClose() {
		if needsRegen {
			size := params.size()
			scale := terrain.Scale{X: 1, Y: 1, Z: float64(params.ScaleZ)}
			field, genErr = terrain.Build(size, scale, params.strategy())
			if genErr == nil {
				stats = telemetry.ComputeFieldStats(field)
				if size != textureSize {
					if textureSize > 0 {
						rl.UnloadTexture(texture)
					}
					img := rl.GenImageColor(size, size, rl.Black)
					texture = rl.LoadTextureFromImage(img)
					rl.UnloadImage(img)
					textureSize = size
				}
				updateTexture(texture, field, params.ShowNormals)
			}
			needsRegen = false
		}

		rl.BeginDrawing()
		rl.ClearBackground(rl.RayWhite)

		// Draw preview
		if textureSize > 0 {
			rl.DrawTexturePro(
				texture,
				rl.Rectangle{X: 0, Y: 0, Width: float32(textureSize), Height: float32(textureSize)},
				rl.Rectangle{X: 10, Y: 10, Width: previewSize, Height: previewSize},
				rl.Vector2{X: 0, Y: 0},
				0,
				rl.White,
			)
		}
		rl.DrawRectangleLines(10, 10, previewSize, previewSize, rl.DarkGray)

		// Draw stats
		statsY := int32(previewSize + 25)
		if genErr != nil {
			rl.DrawText(genErr.Error(), 15, statsY, 16, rl.Red)
		} else {
			rl.DrawText(fmt.Sprintf("Size: %d  Strategy: %s", stats.Size, stats.Strategy), 15, statsY, 16, rl.DarkGray)
			rl.DrawText(fmt.Sprintf("Min: %.3f  Max: %.3f  Mean: %.3f  Std: %.3f",
				stats.MinHeight, stats.MaxHeight, stats.MeanHeight, stats.StdHeight), 15, statsY+20, 16, rl.DarkGray)
			rl.DrawText(fmt.Sprintf("Slope mean: %.1f deg  max: %.1f deg", stats.MeanSlopeDeg, stats.MaxSlopeDeg), 15, statsY+40, 16, rl.DarkGray)
		}

		// Control panel
		panelX := float32(previewSize + 20)
		panelY := float32(10)

		rl.DrawText("Terrain Parameters", int32(panelX), int32(panelY), 20, rl.DarkGray)
		panelY += 35

		newExp := slider(panelX, &panelY, "Size (2^n + 1 cells)", "4", "9",
			fmt.Sprintf("%d", params.size()), float32(params.SizeExp), 4, 9)
		if int(newExp) != params.SizeExp {
			params.SizeExp = int(newExp)
			needsRegen = true
		}

		newScaleZ := slider(panelX, &panelY, "Height scale (z)", "0.05", "1.0",
			fmt.Sprintf("%.2f", params.ScaleZ), params.ScaleZ, 0.05, 1.0)
		if newScaleZ != params.ScaleZ {
			params.ScaleZ = newScaleZ
			needsRegen = true
		}

		// Separator
		rl.DrawLine(int32(panelX), int32(panelY), int32(panelX)+int32(panelWidth)-20, int32(panelY), rl.LightGray)
		panelY += 15

		rl.DrawText("Noise", int32(panelX), int32(panelY), 16, rl.DarkGray)
		panelY += 25

		newFreq := slider(panelX, &panelY, "Frequency (cycles per cell)", "0.001", "0.2",
			fmt.Sprintf("%.3f", params.Frequency), params.Frequency, 0.001, 0.2)
		if newFreq != params.Frequency {
			params.Frequency = newFreq
			needsRegen = true
		}

		newAmp := slider(panelX, &panelY, "Amplitude", "0", "2",
			fmt.Sprintf("%.2f", params.Amplitude), params.Amplitude, 0, 2)
		if newAmp != params.Amplitude {
			params.Amplitude = newAmp
			needsRegen = true
		}

		newOctaves := slider(panelX, &panelY, "Octaves", "0", "8",
			fmt.Sprintf("%d", params.Octaves), float32(params.Octaves), 0, 8)
		if int(newOctaves) != params.Octaves {
			params.Octaves = int(newOctaves)
			needsRegen = true
		}

		rl.DrawLine(int32(panelX), int32(panelY), int32(panelX)+int32(panelWidth)-20, int32(panelY), rl.LightGray)
		panelY += 15

		rl.DrawText("Displacement", int32(panelX), int32(panelY), 16, rl.DarkGray)
		panelY += 25

		newMag := slider(panelX, &panelY, "Displacement (jitter std dev)", "0", "1",
			fmt.Sprintf("%.2f", params.Magnitude), params.Magnitude, 0, 1)
		if newMag != params.Magnitude {
			params.Magnitude = newMag
			needsRegen = true
		}

		newRough := slider(panelX, &panelY, "Roughness (decay exponent)", "0.25", "2",
			fmt.Sprintf("%.2f", params.Roughness), params.Roughness, 0.25, 2)
		if newRough != params.Roughness {
			params.Roughness = newRough
			needsRegen = true
		}

		newSeed := slider(panelX, &panelY, "Seed", "0", "99999",
			fmt.Sprintf("%d", params.Seed), float32(params.Seed), 0, 99999)
		if uint32(newSeed) != params.Seed {
			params.Seed = uint32(newSeed)
			needsRegen = true
		}
		panelY += 10

		// Buttons
		if gui.Button(rl.Rectangle{X: panelX, Y: panelY, Width: 120, Height: 30},
			toggleText(params.Displacement, "Use Noise", "Use Displacement")) {
			params.Displacement = !params.Displacement
			needsRegen = true
		}

		if gui.Button(rl.Rectangle{X: panelX + 130, Y: panelY, Width: 120, Height: 30},
			toggleText(params.ShowNormals, "Show Heights", "Show Normals")) {
			params.ShowNormals = !params.ShowNormals
			needsRegen = true
		}
		panelY += 45

		if gui.Button(rl.Rectangle{X: panelX, Y: panelY, Width: 120, Height: 30}, "Random Seed") {
			params.Seed = uint32(rl.GetRandomValue(0, 99999))
			needsRegen = true
		}

		if gui.Button(rl.Rectangle{X: panelX + 130, Y: panelY, Width: 120, Height: 30}, "Reset All") {
			params = defaultParams()
			needsRegen = true
		}

		// Instructions
		rl.DrawText("Press C to copy YAML to clipboard", int32(panelX), int32(windowHeight-30), 12, rl.LightGray)

		// Copy to clipboard on C key
		if rl.IsKeyPressed(rl.KeyC) {
			rl.SetClipboardText(params.yaml())
		}

		rl.EndDrawing()
	}
}

func toggleText(cond bool, ifTrue, ifFalse string) string {
	if cond {
		return ifTrue
	}
	return ifFalse
}

// updateTexture updates the GPU texture from the field, either as the
// quantized normal map or as a color ramp over normalized heights.
func updateTexture(texture rl.Texture2D, f *terrain.HeightField, normals bool) {
	size := f.Size()
	pixels := make([]color.RGBA, size*size)
	if normals {
		f.EachCell(func(i, j int) {
			n := f.Normal(i, j)
			pixels[i*size+j] = color.RGBA{R: export.Quantize(n.X), G: export.Quantize(n.Y), B: export.Quantize(n.Z), A: 255}
		})
		rl.UpdateTexture(texture, pixels)
		return
	}

	img := export.HeightImage(f)
	f.EachCell(func(i, j int) {
		v := float32(img.Gray16At(j, i).Y) / 65535
		pixels[i*size+j] = heightColor(v)
	})
	rl.UpdateTexture(texture, pixels)
}

// heightColor maps a normalized height to water, lowland, rock and snow.
func heightColor(v float32) color.RGBA {
	var r, g, b uint8
	if v < 0.3 {
		// Deep to shallow water
		t := v / 0.3
		r = uint8(10 + t*30)
		g = uint8(30 + t*90)
		b = uint8(80 + t*120)
	} else if v < 0.55 {
		// Grass
		t := (v - 0.3) / 0.25
		r = uint8(50 + t*60)
		g = uint8(130 + t*30)
		b = uint8(50 + t*20)
	} else if v < 0.8 {
		// Rock
		t := (v - 0.55) / 0.25
		r = uint8(110 + t*30)
		g = uint8(100 + t*20)
		b = uint8(80 + t*30)
	} else {
		// Snow
		t := (v - 0.8) / 0.2
		r = uint8(200 + t*55)
		g = uint8(200 + t*55)
		b = uint8(200 + t*55)
	}
	return color.RGBA{R: r, G: g, B: b, A: 255}
}
