package ibxmsample

import "math"

/*
	Windowed-sinc kernels, one table per lowpass cutoff.
	Table t has a cutoff of 1/(t+1) of the source Nyquist frequency and holds
	TABLE_ACCURACY+1 rows of FILTER_TAPS coefficients, one row per fractional position.
	Built once at package initialisation and never written again.
*/
var sincTables = calculateSincTables()

func calculateSincTables() [][]int16 {
	sincTables := make([][]int16, NUM_TABLES)
	for tableIdx := 0; tableIdx < NUM_TABLES; tableIdx++ {
		sincTables[tableIdx] = calculateSincTable(1.0 / float64(tableIdx+1))
	}
	return sincTables
}

func calculateSincTable(lowpass float64) []int16 {
	sincTable := make([]int16, (TABLE_ACCURACY+1)*FILTER_TAPS)
	windDT := -2.0 * math.Pi / FILTER_TAPS
	sincDT := -math.Pi
	tableIdx := 0
	for tableY := 0; tableY <= TABLE_ACCURACY; tableY++ {
		fracT := float64(tableY) / TABLE_ACCURACY
		sincT := math.Pi * (FILTER_TAPS/2 - 1 + fracT)
		windT := math.Pi + sincT*2.0/FILTER_TAPS
		for tableX := 0; tableX < FILTER_TAPS; tableX++ {
			sincY := lowpass
			if sincT != 0 {
				sincY = math.Sin(lowpass*sincT) / sincT
			}
			// Blackman-Harris window function.
			windY := 0.35875
			windY -= 0.48829 * math.Cos(windT)
			windY += 0.14128 * math.Cos(windT*2)
			windY -= 0.01168 * math.Cos(windT*3)
			sincTable[tableIdx] = int16(math.Floor(sincY*windY*32767 + 0.5))
			tableIdx++
			sincT += sincDT
			windT += windDT
		}
	}
	return sincTable
}

/* Returns the kernel table used by the sinc interpolator for the given step. */
func SincTableIndex(step int) int {
	tableIdx := 0
	if step > FP_ONE {
		// Increase lowpass filter to avoid aliasing.
		tableIdx = (step >> FP_SHIFT) - 1
		if tableIdx >= NUM_TABLES {
			tableIdx = NUM_TABLES - 1
		}
	}
	return tableIdx
}

/* Returns a copy of a kernel table, addressed [subPosition*FILTER_TAPS+tap]. */
func SincTable(tableIdx int) []int16 {
	if tableIdx < 0 || tableIdx >= NUM_TABLES {
		return nil
	}
	table := make([]int16, len(sincTables[tableIdx]))
	copy(table, sincTables[tableIdx])
	return table
}
