package geo

// BuildMatrix returns the all-pairs travel time matrix in minutes for points.
// Entry [i][j] is the time from points[i] to points[j]; the diagonal is zero.
func BuildMatrix(points []Point) [][]int {
	n := len(points)
	matrix := make([][]int, n)
	for i := range matrix {
		matrix[i] = make([]int, n)
	}

	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			if i == j {
				continue
			}
			matrix[i][j] = DistanceAndTime(points[i], points[j]).Minutes
		}
	}
	return matrix
}
