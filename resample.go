package ibxmsample

/*
	Add length stereo frames of the sample into mixBuffer starting at frame offset,
	using the given interpolation.
	sampleIdx is the position in the unpadded sample, sampleFrac and step are FP_SHIFT
	fixed-point, the gains are FP_ONE for unity. mixBuffer is interleaved left/right and
	is accumulated into, never cleared or clipped.
	An unlooped sample stops contributing once it has played past its end.
*/
func (this *Sample) Resample(interpolation Interpolation, sampleIdx, sampleFrac, step,
	leftGain, rightGain int, mixBuffer []int32, offset, length int) {
	switch interpolation {
	case NEAREST:
		this.ResampleNearest(sampleIdx, sampleFrac, step, leftGain, rightGain, mixBuffer, offset, length)
	case SINC:
		this.ResampleSinc(sampleIdx, sampleFrac, step, leftGain, rightGain, mixBuffer, offset, length)
	default:
		this.ResampleLinear(sampleIdx, sampleFrac, step, leftGain, rightGain, mixBuffer, offset, length)
	}
}

func (this *Sample) ResampleNearest(sampleIdx, sampleFrac, step,
	leftGain, rightGain int, mixBuffer []int32, offset, length int) {
	loopLen := this.loopLength
	loopEnd := this.loopStart + loopLen
	sampleIdx += DELAY
	if sampleIdx >= loopEnd {
		sampleIdx = this.NormaliseSampleIdx(sampleIdx)
	}
	data := this.sampleData
	outIdx := offset << 1
	outEnd := (offset + length) << 1
	for outIdx < outEnd {
		if sampleIdx >= loopEnd {
			if loopLen < 2 {
				break
			}
			for sampleIdx >= loopEnd {
				sampleIdx -= loopLen
			}
		}
		y := int(data[sampleIdx])
		mixBuffer[outIdx] += int32(y * leftGain >> FP_SHIFT)
		outIdx++
		mixBuffer[outIdx] += int32(y * rightGain >> FP_SHIFT)
		outIdx++
		sampleFrac += step
		sampleIdx += sampleFrac >> FP_SHIFT
		sampleFrac &= FP_MASK
	}
}

func (this *Sample) ResampleLinear(sampleIdx, sampleFrac, step,
	leftGain, rightGain int, mixBuffer []int32, offset, length int) {
	loopLen := this.loopLength
	loopEnd := this.loopStart + loopLen
	sampleIdx += DELAY
	if sampleIdx >= loopEnd {
		sampleIdx = this.NormaliseSampleIdx(sampleIdx)
	}
	data := this.sampleData
	outIdx := offset << 1
	outEnd := (offset + length) << 1
	for outIdx < outEnd {
		if sampleIdx >= loopEnd {
			if loopLen < 2 {
				break
			}
			for sampleIdx >= loopEnd {
				sampleIdx -= loopLen
			}
		}
		c := int(data[sampleIdx])
		m := int(data[sampleIdx+1]) - c
		y := (m * sampleFrac >> FP_SHIFT) + c
		mixBuffer[outIdx] += int32(y * leftGain >> FP_SHIFT)
		outIdx++
		mixBuffer[outIdx] += int32(y * rightGain >> FP_SHIFT)
		outIdx++
		sampleFrac += step
		sampleIdx += sampleFrac >> FP_SHIFT
		sampleFrac &= FP_MASK
	}
}

/*
	Sinc interpolation. The kernel table is chosen from the step so that
	pitching down is lowpass filtered before it can alias.
*/
func (this *Sample) ResampleSinc(sampleIdx, sampleFrac, step,
	leftGain, rightGain int, mixBuffer []int32, offset, length int) {
	this.resampleSincTable(sincTables[SincTableIndex(step)], sampleIdx, sampleFrac, step,
		leftGain, rightGain, mixBuffer, offset, length)
}

// The 16-tap window starts at sampleIdx, so no DELAY is added here.
func (this *Sample) resampleSincTable(sincTable []int16, sampleIdx, sampleFrac, step,
	leftGain, rightGain int, mixBuffer []int32, offset, length int) {
	loopLen := this.loopLength
	loopEnd := this.loopStart + loopLen
	if sampleIdx >= loopEnd {
		sampleIdx = this.NormaliseSampleIdx(sampleIdx)
	}
	data := this.sampleData
	outIdx := offset << 1
	outEnd := (offset + length) << 1
	for outIdx < outEnd {
		if sampleIdx >= loopEnd {
			if loopLen < 2 {
				break
			}
			for sampleIdx >= loopEnd {
				sampleIdx -= loopLen
			}
		}
		tableIdx1 := (sampleFrac >> TABLE_INTERP_SHIFT) << LOG2_FILTER_TAPS
		tableIdx2 := tableIdx1 + FILTER_TAPS
		taps := data[sampleIdx : sampleIdx+FILTER_TAPS]
		kernel1 := sincTable[tableIdx1 : tableIdx1+FILTER_TAPS]
		kernel2 := sincTable[tableIdx2 : tableIdx2+FILTER_TAPS]
		a1, a2 := 0, 0
		for tap, x := range taps {
			a1 += int(kernel1[tap]) * int(x)
			a2 += int(kernel2[tap]) * int(x)
		}
		a1 >>= FP_SHIFT
		a2 >>= FP_SHIFT
		y := a1 + ((a2 - a1) * (sampleFrac & TABLE_INTERP_MASK) >> TABLE_INTERP_SHIFT)
		mixBuffer[outIdx] += int32(y * leftGain >> FP_SHIFT)
		outIdx++
		mixBuffer[outIdx] += int32(y * rightGain >> FP_SHIFT)
		outIdx++
		sampleFrac += step
		sampleIdx += sampleFrac >> FP_SHIFT
		sampleFrac &= FP_MASK
	}
}
