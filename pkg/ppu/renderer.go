package ppu

// Sprite attribute flags
const (
	SpriteFlipHorizontal = 0x40
	SpriteFlipVertical   = 0x80
	SpritePriority       = 0x20 // 0=front of background, 1=behind background
	SpritePaletteMask    = 0x03 // Palette selection (bits 0-1)
)

// reverseBits flips the bit order of a byte so that bit 7 of the fetched
// pattern plane (conventionally the leftmost pixel on hardware) ends up as
// bit 0, letting the shift registers read out left-to-right with a simple
// right shift. Grounded on original_source/src/ppu.c's reverse_bits/pattern
// fetch at sub-cycle offsets 5 and 7.
func reverseBits(b uint8) uint8 {
	b = (b&0xF0)>>4 | (b&0x0F)<<4
	b = (b&0xCC)>>2 | (b&0x33)<<2
	b = (b&0xAA)>>1 | (b&0x55)<<1
	return b
}

// tickBackgroundPipeline runs the background fetch pipeline's 8-tick
// sub-cycle for ticks 1..256 and 321..336, and shifts the pattern/palette
// shift registers forward for ticks 1..256 and 329..336 (spec.md §4.2).
// Grounded on _do_general_cycle_routine in original_source/src/ppu.c.
func (p *PPU) tickBackgroundPipeline(renderingEnabled bool) {
	inFetchWindow := (p.Cycle >= 1 && p.Cycle <= 256) || (p.Cycle >= 321 && p.Cycle <= 336)

	if inFetchWindow && renderingEnabled {
		switch (p.Cycle - 1) % 8 {
		case 0:
			// Reload shift registers with the previous tile's latched bytes.
			p.attrLatch = p.attrLatchSec
			p.patternShiftLo = (p.patternShiftLo &^ 0xFF00) | (uint16(p.patternLoLatch) << 8)
			p.patternShiftHi = (p.patternShiftHi &^ 0xFF00) | (uint16(p.patternHiLatch) << 8)
		case 1:
			nameTableAddr := uint16(0x2000) | (p.v & 0x0FFF)
			p.ntLatch = p.readVRAM(nameTableAddr)
		case 3:
			attrAddr := uint16(0x23C0) | (p.v & 0x0C00) | ((p.v >> 4) & 0x38) | ((p.v >> 2) & 0x07)
			attrByte := p.readVRAM(attrAddr)
			if p.v&0x0040 != 0 { // y_coarse bit 1 -> bottom half of the attribute cell
				attrByte >>= 4
			}
			if p.v&0x0002 != 0 { // x_coarse bit 1 -> right half of the attribute cell
				attrByte >>= 2
			}
			p.attrLatchSec = attrByte & 0x03
		case 5:
			patternBase := uint16(0x0000)
			if p.PPUCTRL&PPUCTRLBGTable != 0 {
				patternBase = 0x1000
			}
			fineY := (p.v >> 12) & 0x07
			addr := patternBase + uint16(p.ntLatch)*16 + fineY
			p.patternLoLatch = reverseBits(p.readVRAM(addr))
		case 7:
			patternBase := uint16(0x0000)
			if p.PPUCTRL&PPUCTRLBGTable != 0 {
				patternBase = 0x1000
			}
			fineY := (p.v >> 12) & 0x07
			addr := patternBase + uint16(p.ntLatch)*16 + fineY + 8
			p.patternHiLatch = reverseBits(p.readVRAM(addr))

			if p.Cycle == 256 {
				p.incrementVertical()
			}
			p.incrementHorizontal()
		}
	}

	if (p.Cycle >= 1 && p.Cycle <= 256) || (p.Cycle >= 329 && p.Cycle <= 336) {
		p.patternShiftLo >>= 1
		p.patternShiftHi >>= 1
		p.paletteShiftLo >>= 1
		p.paletteShiftHi >>= 1
		if p.attrLatch&0x02 != 0 {
			p.paletteShiftHi |= 0x80
		}
		if p.attrLatch&0x01 != 0 {
			p.paletteShiftLo |= 0x80
		}
	}
}

// incrementHorizontal advances v's coarse-x, toggling the horizontal
// nametable bit on wraparound at x_coarse=31.
func (p *PPU) incrementHorizontal() {
	if p.v&0x001F == 31 {
		p.v &^= 0x001F
		p.v ^= 0x0400
	} else {
		p.v++
	}
}

// incrementVertical advances v's fine-y, rolling into coarse-y (with the
// y=29/y=31 wraparound rules) once fine-y overflows.
func (p *PPU) incrementVertical() {
	if p.v&0x7000 != 0x7000 {
		p.v += 0x1000
		return
	}
	p.v &^= 0x7000
	y := (p.v & 0x03E0) >> 5
	switch y {
	case 29:
		y = 0
		p.v ^= 0x0800
	case 31:
		y = 0
	default:
		y++
	}
	p.v = (p.v &^ 0x03E0) | (y << 5)
}

// spriteHeight returns the active sprite height in pixels per PPUCTRL.
func (p *PPU) spriteHeight() int {
	if p.PPUCTRL&PPUCTRLSpriteSize != 0 {
		return 16
	}
	return 8
}

// tickSpriteEvaluation runs the three-phase sprite pipeline described in
// spec.md §4.2: clear (1..64), evaluate (65..256, visible scanlines only),
// and fetch (257..320, every rendering scanline including pre-render so the
// slot registers are ready for the scanline about to start). Grounded on
// _do_sprite_evaluation in original_source/src/ppu.c, with the pre-render
// fetch phase corrected to actually run (the source's nested visible-line
// guard makes it unreachable there, which would leave scanline 0 without
// sprites -- see DESIGN.md).
func (p *PPU) tickSpriteEvaluation() {
	visible := p.Scanline >= 0 && p.Scanline < 240

	if visible {
		switch {
		case p.Cycle == 0:
			p.evalM = 0
			p.evalN = 0
			p.evalO = 0
			p.spriteZeroThisScan = p.spriteZeroNextScan
			p.spriteZeroNextScan = false
		case p.Cycle >= 1 && p.Cycle <= 64:
			if p.Cycle%2 == 0 {
				p.secondaryOAM[p.Cycle/2-1] = 0xFF
			}
		case p.Cycle >= 65 && p.Cycle <= 256:
			p.evaluateSpriteTick()
		}
	}

	if p.Cycle >= 257 && p.Cycle <= 320 {
		if p.Cycle == 257 {
			p.loadedSprites = p.evalO
			p.evalO = 0
		}
		p.fetchSpriteSlotTick()
	}
}

// evaluateSpriteTick runs one tick (65..256) of the linear primary-OAM scan:
// odd ticks read a byte from primary OAM, even ticks write the latched byte
// to secondary OAM (or set sprite-overflow on a ninth match attempt).
func (p *PPU) evaluateSpriteTick() {
	height := p.spriteHeight()
	if p.evalN >= 64 {
		return
	}

	if p.Cycle%2 == 1 {
		oamBase := p.evalN * 4
		switch p.evalM {
		case 0:
			y := p.OAM[oamBase]
			if int(y) <= p.Scanline && p.Scanline-int(y) < height {
				p.evalM++
				p.evalLatch = y
				p.evalHasLatch = true
				if p.evalO >= 8 {
					p.PPUSTATUS |= 0x20 // sprite overflow
				}
			} else {
				p.evalN++
			}
		case 1:
			p.evalLatch = p.OAM[oamBase+1]
			p.evalHasLatch = true
			p.evalM++
		case 2:
			p.evalLatch = p.OAM[oamBase+2]
			p.evalHasLatch = true
			p.evalM++
		case 3:
			p.evalLatch = p.OAM[oamBase+3]
			p.evalHasLatch = true
			p.evalM++
		}
		return
	}

	if p.evalHasLatch {
		if p.evalO < 8 {
			p.secondaryOAM[p.evalO*4+(p.evalM-1)] = p.evalLatch
		}
		p.evalHasLatch = false
	}
	if p.evalM == 4 {
		if p.evalN == 0 {
			p.spriteZeroNextScan = true
		}
		p.evalN++
		p.evalO++
		p.evalM = 0
	}
}

// fetchSpriteSlotTick loads one byte of the sprite unit at index (the
// secondary-OAM slot currently being prepared) every tick from 257..320,
// matching the sub-cycle layout used for the background fetch.
func (p *PPU) fetchSpriteSlotTick() {
	index := p.evalO
	if index >= 8 {
		return
	}
	switch (p.Cycle - 1) % 8 {
	case 0:
		p.spriteYLatch = p.secondaryOAM[index*4]
	case 1:
		p.spriteTileLatch = p.secondaryOAM[index*4+1]
	case 2:
		p.spriteAttr[index] = p.secondaryOAM[index*4+2]
	case 3:
		p.spriteXCounter[index] = p.secondaryOAM[index*4+3]
		p.spriteDeath[index] = 8
	case 5:
		p.spriteShiftLo[index] = p.fetchSpritePatternByte(index, false)
	case 7:
		p.spriteShiftHi[index] = p.fetchSpritePatternByte(index, true)
		p.evalO++
	}
}

// fetchSpritePatternByte computes and fetches one plane of a sprite's
// pattern row, applying flips and the 8x16 tall-sprite addressing rule.
func (p *PPU) fetchSpritePatternByte(index int, highPlane bool) uint8 {
	if index >= p.loadedSprites {
		return 0 // unfilled slot: transparent
	}

	attrs := p.spriteAttr[index]
	flipV := attrs&SpriteFlipVertical != 0
	flipH := attrs&SpriteFlipHorizontal != 0
	tall := p.PPUCTRL&PPUCTRLSpriteSize != 0

	curY := p.Scanline - int(p.spriteYLatch)
	bottomTile := false
	if tall {
		bottomTile = (curY > 7) != flipV
		if curY > 7 {
			curY -= 8
		}
	}
	if flipV {
		curY = 7 - curY
	}

	var addr uint16
	planeOffset := uint16(0)
	if highPlane {
		planeOffset = 8
	}
	if tall {
		tileIndex := uint16(p.spriteTileLatch) & 0xFE
		if bottomTile {
			tileIndex++
		}
		table := uint16(0)
		if p.spriteTileLatch&1 != 0 {
			table = 0x1000
		}
		addr = table + tileIndex*16 + uint16(curY) + planeOffset
	} else {
		table := uint16(0)
		if p.PPUCTRL&PPUCTRLSpriteTable != 0 {
			table = 0x1000
		}
		addr = table + uint16(p.spriteTileLatch)*16 + uint16(curY) + planeOffset
	}

	b := p.readVRAM(addr)
	if !flipH {
		b = reverseBits(b)
	}
	return b
}

// composePixel draws one pixel (ticks 1..256 of visible scanlines 0..239)
// by combining the background shift registers and the 8 sprite slots, per
// spec.md §4.2's pixel composition algorithm. Grounded on the tail of
// cycle_ppu in original_source/src/ppu.c.
func (p *PPU) composePixel() {
	if p.Cycle < 1 || p.Cycle > 256 {
		return
	}
	x := p.Cycle - 1
	y := p.Scanline
	index := y*256 + x
	if index < 0 || index >= len(p.FrameBuffer) {
		return
	}

	if p.RenderMode != RenderNormal {
		p.FrameBuffer[index] = p.renderDebugPixel(x, y)
		return
	}

	renderingEnabled := (p.PPUMASK & (PPUMASKBGShow | PPUMASKSpriteShow)) != 0
	if !renderingEnabled {
		// Per spec.md §4.2 step 5: with both layers off, output the
		// universal color at palette index 0x0F directly.
		paletteIndex := p.PaletteManager.ReadPalette(0x0F)
		p.FrameBuffer[index] = p.PaletteManager.getARGBColor(paletteIndex)
		return
	}

	bgLo := uint8(p.patternShiftLo>>p.x) & 1
	bgHi := uint8(p.patternShiftHi>>p.x) & 1
	bgColorIndex := (bgHi << 1) | bgLo

	bgShowLeft := p.PPUMASK&PPUMASKBGLeft != 0
	bgTransparent := bgColorIndex == 0 || (x < 8 && !bgShowLeft)

	var bgPaletteOffset uint8
	if !bgTransparent {
		palLo := uint8(p.paletteShiftLo>>p.x) & 1
		palHi := uint8(p.paletteShiftHi>>p.x) & 1
		bgPaletteOffset = (palHi << 3) | (palLo << 2) | bgColorIndex
	}

	var finalOffset uint8
	if p.PPUMASK&PPUMASKBGShow != 0 {
		finalOffset = bgPaletteOffset
	} else {
		finalOffset = 0x0F
	}

	spriteEnabled := p.PPUMASK&PPUMASKSpriteShow != 0
	spriteShowLeft := p.PPUMASK&PPUMASKSpriteLeft != 0
	if spriteEnabled && !(x < 8 && !spriteShowLeft) {
		for i := 0; i < p.loadedSprites && i < 8; i++ {
			if p.spriteXCounter[i] != 0 {
				continue
			}
			if p.spriteDeath[i] == 0 {
				continue
			}
			colorIndex := ((p.spriteShiftHi[i] & 1) << 1) | (p.spriteShiftLo[i] & 1)
			if colorIndex == 0 {
				continue
			}

			if p.spriteZeroThisScan && i == 0 && p.PPUMASK&PPUMASKBGShow != 0 && !bgTransparent && x != 255 {
				p.PPUSTATUS |= PPUSTATUSSprite0Hit
			}

			attrs := p.spriteAttr[i]
			palette := 0x10 | ((attrs & SpritePaletteMask) << 2) | colorIndex
			if attrs&SpritePriority == 0 || bgTransparent {
				finalOffset = palette
			}
			break
		}
	}

	paletteIndex := p.PaletteManager.ReadPalette(finalOffset)
	rgb := p.PaletteManager.getARGBColor(paletteIndex)

	p.FrameBuffer[index] = rgb
	p.PersistentFrameBuffer[index] = rgb
	p.renderingOccurred = true

	for i := 0; i < 8; i++ {
		if p.spriteXCounter[i] != 0 {
			p.spriteXCounter[i]--
		} else if p.spriteDeath[i] != 0 {
			p.spriteDeath[i]--
			p.spriteShiftLo[i] >>= 1
			p.spriteShiftHi[i] >>= 1
		}
	}
}

// getPixelColor extracts a 2-bit color index from a pair of pattern planes,
// used only by the non-cycle-accurate debug render modes below.
func getPixelColor(patternLo, patternHi uint8, pixelX int) uint8 {
	bitPos := 7 - pixelX
	lowBit := (patternLo >> uint(bitPos)) & 1
	highBit := (patternHi >> uint(bitPos)) & 1
	return (highBit << 1) | lowBit
}

// renderDebugPixel renders the pixel at (x,y) for one of the debug render
// modes: a chosen raw nametable ignoring scroll, or the two pattern tables
// side by side using the first background palette.
func (p *PPU) renderDebugPixel(x, y int) uint32 {
	switch p.RenderMode {
	case RenderNametable0, RenderNametable1, RenderNametable2, RenderNametable3:
		ntIndex := int(p.RenderMode - RenderNametable0)
		base := uint16(0x2000) + uint16(ntIndex)*0x400
		tileX, pixelX := x/8, x%8
		tileY, pixelY := y/8, y%8
		tileAddr := base + uint16(tileY*32+tileX)
		tileIndex := p.readVRAM(tileAddr)
		attrAddr := base + 0x3C0 + uint16((tileY/4)*8+(tileX/4))
		attrByte := p.readVRAM(attrAddr)
		attrShift := ((tileY & 2) * 2) + ((tileX&2)/2)*2
		attributes := (attrByte >> attrShift) & 0x03

		patternBase := uint16(0x0000)
		if p.PPUCTRL&PPUCTRLBGTable != 0 {
			patternBase = 0x1000
		}
		tileAddrPattern := patternBase + uint16(tileIndex)*16
		patternLo := p.readVRAM(tileAddrPattern + uint16(pixelY))
		patternHi := p.readVRAM(tileAddrPattern + uint16(pixelY) + 8)
		colorIndex := getPixelColor(patternLo, patternHi, pixelX)
		return p.PaletteManager.GetBackgroundColor(attributes, colorIndex)

	case RenderPatternTables:
		// Two 128x128 pattern tables side by side, scaled to fill 256x240
		// by sampling every pixel (each screen pixel maps 1:1 into a
		// 256-wide, doubled-height view of the 16x16 tile grid).
		tableSelect := 0
		px := x
		if x >= 128 {
			tableSelect = 1
			px = x - 128
		}
		tileCol := px / 8
		tileRow := (y / 2) / 8
		pixelX := px % 8
		pixelY := (y / 2) % 8
		tileIndex := tileRow*16 + tileCol
		tableBase := uint16(tableSelect) * 0x1000
		tileAddr := tableBase + uint16(tileIndex)*16
		patternLo := p.readVRAM(tileAddr + uint16(pixelY))
		patternHi := p.readVRAM(tileAddr + uint16(pixelY) + 8)
		colorIndex := getPixelColor(patternLo, patternHi, pixelX)
		return p.PaletteManager.GetBackgroundColor(0, colorIndex)
	}
	return p.PaletteManager.GetBackgroundColor(0, 0)
}
