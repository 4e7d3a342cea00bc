package qusim

// A quantum channel is a set of Kraus operators {K_i} acting as
// eps(rho) = sum_i K_i rho K_i^dag, subject to the completeness relation
// sum_i K_i^dag K_i = I.

// ApplyKraus returns sum_i K_i rho K_i^dag for a flat dim x dim rho.
func ApplyKraus(rho []complex128, dim int, kraus [][]complex128) []complex128 {
	out := make([]complex128, len(rho))
	for _, k := range kraus {
		term := matMul(matMul(k, rho, dim), dagger(k, dim), dim)
		for i := range out {
			out[i] += term[i]
		}
	}
	return out
}

// VerifyCompleteness checks sum_i K_i^dag K_i = I within tol.
func VerifyCompleteness(kraus [][]complex128, dim int, tol float64) bool {
	if len(kraus) == 0 {
		return false
	}
	sum := make([]complex128, dim*dim)
	for _, k := range kraus {
		term := matMul(dagger(k, dim), k, dim)
		for i := range sum {
			sum[i] += term[i]
		}
	}
	return matricesClose(sum, identity(dim), tol)
}

// embedKraus lifts single-qubit Kraus operators into the full 2^n space by
// taking Kronecker products with identities on every other qubit. Qubit 0
// is the leftmost tensor factor, matching the basis-index convention.
func embedKraus(kraus [][]complex128, numQubits, target int) [][]complex128 {
	id := identity(2)
	out := make([][]complex128, len(kraus))
	for i, k := range kraus {
		embedded := []complex128{1}
		dim := 1
		for q := 0; q < numQubits; q++ {
			if q == target {
				embedded = kron(embedded, dim, k, 2)
			} else {
				embedded = kron(embedded, dim, id, 2)
			}
			dim *= 2
		}
		out[i] = embedded
	}
	return out
}
