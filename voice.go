package ibxmsample

var (
	freqTable = []int{
		// Frequency for keys 109 to 121 with 8 fractional values.
		267616, 269555, 271509, 273476, 275458, 277454, 279464, 281489,
		283529, 285584, 287653, 289738, 291837, 293952, 296082, 298228,
		300389, 302566, 304758, 306966, 309191, 311431, 313688, 315961,
		318251, 320557, 322880, 325220, 327576, 329950, 332341, 334749,
		337175, 339618, 342079, 344558, 347055, 349570, 352103, 354655,
		357225, 359813, 362420, 365047, 367692, 370356, 373040, 375743,
		378466, 381209, 383971, 386754, 389556, 392379, 395222, 398086,
		400971, 403877, 406803, 409751, 412720, 415711, 418723, 421758,
		424814, 427892, 430993, 434116, 437262, 440430, 443622, 446837,
		450075, 453336, 456621, 459930, 463263, 466620, 470001, 473407,
		476838, 480293, 483773, 487279, 490810, 494367, 497949, 501557,
		505192, 508853, 512540, 516254, 519995, 523763, 527558, 531381,
		535232, 539111, 543017, 546952, 550915, 554908, 558929, 562979,
	}
)

/*
	Voice is a playback cursor over one Sample.
	It is not safe for concurrent use; the Sample it plays may be shared.
*/
type Voice struct {
	sample *Sample
	sampleIdx, sampleFra,
	freq, volume, panning int
}

func NewVoice(sample *Sample) *Voice {
	this := &Voice{sample: sample}
	this.volume = sample.Volume & 0x3F
	if sample.Volume >= 64 {
		this.volume = 64
	}
	this.panning = 128
	if sample.Panning >= 0 {
		this.panning = sample.Panning & 0xFF
	}
	return this
}

func (this *Voice) Sample() *Sample {
	return this.sample
}

/*
	Restart the sample at the given key (1 to 120, 49 is C-4).
	The sample's relative note and fine tune are applied using linear periods.
*/
func (this *Voice) Trigger(key int) {
	key += this.sample.RelNote
	if key < 1 {
		key = 1
	}
	if key > 120 {
		key = 120
	}
	period := 7680 - ((key - 1) << 6) - (this.sample.FineTune >> 1)
	if period < 28 {
		period = 28
	}
	this.freq = periodToFreq(period)
	this.sampleIdx = 0
	this.sampleFra = 0
}

func periodToFreq(period int) int {
	if period < 28 || period > 7680 {
		period = 7680
	}
	tone := 7680 - period
	i := (tone >> 3) % 96
	c := freqTable[i]
	m := freqTable[i+1] - c
	x := tone & 0x7
	y := ((m * x) >> 3) + c
	return y >> uint(9-tone/768)
}

/* Set the playback frequency in Hz, the rate at which sample frames are consumed. */
func (this *Voice) SetFrequency(freq int) {
	if freq < 0 {
		freq = 0
	}
	this.freq = freq
}

func (this *Voice) Frequency() int {
	return this.freq
}

/* Set the volume, 0 to 64. */
func (this *Voice) SetVolume(volume int) {
	if volume < 0 {
		volume = 0
	}
	if volume > 64 {
		volume = 64
	}
	this.volume = volume
}

/* Set the panning, 0 (left) to 255 (right). */
func (this *Voice) SetPanning(panning int) {
	this.panning = panning & 0xFF
}

/* Move the playback position, in frames of the unpadded sample. */
func (this *Voice) SetPosition(sampleIdx, sampleFrac int) {
	this.sampleIdx = sampleIdx
	this.sampleFra = sampleFrac & FP_MASK
}

func (this *Voice) Position() (sampleIdx, sampleFrac int) {
	return this.sampleIdx, this.sampleFra
}

func (this *Voice) Step(sampleRate int) int {
	return (this.freq << (FP_SHIFT - 3)) / (sampleRate >> 3)
}

func (this *Voice) Gains() (left, right int) {
	ampl := this.volume << (FP_SHIFT - 6)
	left = ampl * (255 - this.panning) >> 8
	right = ampl * this.panning >> 8
	return left, right
}

/* An unlooped voice has ended once its position reaches the end of the sample. */
func (this *Voice) Ended() bool {
	s := this.sample
	return s.loopLength < 2 && this.sampleIdx+DELAY >= s.loopStart+s.loopLength
}

func (this *Voice) Resample(outBuf []int32, offset, length, sampleRate int, interpolation Interpolation) {
	if this.volume <= 0 || this.freq <= 0 {
		return
	}
	lAmpl, rAmpl := this.Gains()
	this.sample.Resample(interpolation, this.sampleIdx, this.sampleFra, this.Step(sampleRate),
		lAmpl, rAmpl, outBuf, offset, length)
}

/* Advance the position by length output frames at sampleRate. */
func (this *Voice) UpdateSampleIdx(length int, sampleRate int) {
	step := this.Step(sampleRate)
	this.sampleFra += step * length
	this.sampleIdx = this.sample.NormaliseSampleIdx(this.sampleIdx + (this.sampleFra >> FP_SHIFT))
	this.sampleFra &= FP_MASK
}
