// Quartic root finding via the "Algorithm 1010" method of Orellana and
// De Michele (ACM TOMS 46(2), 2020): the quartic is decomposed into two
// quadratics whose coefficients are estimated with careful error handling
// and refined by Newton-Raphson. Near machine precision is retained even for
// near-degenerate coefficient sets (two close real roots, roots spanning
// many orders of magnitude), which matters here because a root means
// "seconds until collision" and must be distinguishable from zero at the
// 1e-9 scale.

package roots

import (
	"math"
	"math/cmplx"
)

const (
	cubicRescaleFact = 3.488062113727083e102
	quartRescaleFact = 7.156344627944542e76
	macheps          = 2.2204460492503131e-16
)

func max3(a, b, c float64) float64 {
	return math.Max(math.Max(a, b), c)
}

func oqsSolveCubicDepressedHandleInf(b, c float64) float64 {
	q := -b / 3
	r := 0.5 * c
	if r == 0 {
		if b <= 0 {
			return math.Sqrt(-b)
		}
		return 0
	}

	var kk float64
	if math.Abs(q) < math.Abs(r) {
		qr := q / r
		kk = 1 - q*qr*qr
	} else {
		rq := r / q
		kk = math.Copysign(1, q) * (rq*rq/q - 1)
	}

	if kk < 0 {
		sqrtQ := math.Sqrt(q)
		theta := math.Acos((r / math.Abs(q)) / sqrtQ)
		if theta < math.Pi/2 {
			return -2 * sqrtQ * math.Cos(theta/3)
		}
		return -2 * sqrtQ * math.Cos((theta+2*math.Pi)/3)
	}

	var a float64
	if math.Abs(q) < math.Abs(r) {
		a = -math.Copysign(1, r) * math.Pow(math.Abs(r)*(1+math.Sqrt(kk)), 1.0/3.0)
	} else {
		a = -math.Copysign(1, r) * math.Pow(math.Abs(r)+math.Sqrt(math.Abs(q))*math.Abs(q)*math.Sqrt(kk), 1.0/3.0)
	}
	var bb float64
	if a != 0 {
		bb = q / a
	}
	return a + bb
}

func oqsSolveCubicDepressed(b, c float64) float64 {
	q := -b / 3
	r := 0.5 * c
	if math.Abs(q) > 1e102 || math.Abs(r) > 1e154 {
		return oqsSolveCubicDepressedHandleInf(b, c)
	}
	q3 := q * q * q
	r2 := r * r
	if r2 < q3 {
		theta := math.Acos(r / math.Sqrt(q3))
		sqrtQ := -2 * math.Sqrt(q)
		if theta < math.Pi/2 {
			return sqrtQ * math.Cos(theta/3)
		}
		return sqrtQ * math.Cos((theta+2*math.Pi)/3)
	}
	a := -math.Copysign(1, r) * math.Pow(math.Abs(r)+math.Sqrt(r2-q3), 1.0/3.0)
	var bb float64
	if a != 0 {
		bb = q / a
	}
	return a + bb
}

func oqsCalcPhi0(a, b, c, d float64, scaled bool) float64 {
	var s float64
	diskr := 9*a*a - 24*b
	if diskr > 0 {
		diskr = math.Sqrt(diskr)
		if a > 0 {
			s = -2 * b / (3*a + diskr)
		} else {
			s = -2 * b / (3*a - diskr)
		}
	} else {
		s = -a / 4
	}

	aq := a + 4*s
	bq := b + 3*s*(a+2*s)
	cq := c + s*(2*b+s*(3*a+4*s))
	dq := d + s*(c+s*(b+s*(a+s)))
	gg := bq * bq / 9
	hh := aq * cq

	g := hh - 4*dq - 3*gg
	h := (8*dq+hh-2*gg)*bq/3 - cq*cq - dq*aq*aq
	rmax := oqsSolveCubicDepressed(g, h)
	if math.IsNaN(rmax) || math.IsInf(rmax, 0) {
		rmax = oqsSolveCubicDepressedHandleInf(g, h)
		if (math.IsNaN(rmax) || math.IsInf(rmax, 0)) && scaled {
			rfact := cubicRescaleFact
			rfactsq := rfact * rfact
			dqss := dq / rfactsq
			aqs := aq / rfact
			bqs := bq / rfact
			cqs := cq / rfact
			ggss := bqs * bqs / 9
			hhss := aqs * cqs
			g = hhss - 4*dqss - 3*ggss
			h = (8*dqss+hhss-2*ggss)*bqs/3 - cqs*(cqs/rfact) - (dq/rfact)*aqs*aqs
			rmax = oqsSolveCubicDepressed(g, h)
			if math.IsNaN(rmax) || math.IsInf(rmax, 0) {
				rmax = oqsSolveCubicDepressedHandleInf(g, h)
			}
			rmax *= rfact
		}
	}

	x := rmax
	xsq := x * x
	xxx := x * xsq
	gx := g * x
	f := x*(xsq+g) + h
	maxtt := math.Abs(xxx)
	if math.Abs(gx) > maxtt {
		maxtt = math.Abs(gx)
	}
	if math.Abs(h) > maxtt {
		maxtt = math.Abs(h)
	}

	if math.Abs(f) > macheps*maxtt {
		for iter := 0; iter < 8; iter++ {
			df := 3*xsq + g
			if df == 0 {
				break
			}
			xold := x
			x += -f / df
			fold := f
			xsq = x * x
			f = x*(xsq+g) + h
			if f == 0 {
				break
			}
			if math.Abs(f) >= math.Abs(fold) {
				x = xold
				break
			}
		}
	}
	return x
}

func oqsCalcErrLDLT(b, c, d, d2, l1, l2, l3 float64) float64 {
	var sum float64
	if b == 0 {
		sum = math.Abs(d2 + l1*l1 + 2*l3)
	} else {
		sum = math.Abs(((d2 + l1*l1 + 2*l3) - b) / b)
	}
	if c == 0 {
		sum += math.Abs(2*d2*l2 + 2*l1*l3)
	} else {
		sum += math.Abs(((2*d2*l2 + 2*l1*l3) - c) / c)
	}
	if d == 0 {
		sum += math.Abs(d2*l2*l2 + l3*l3)
	} else {
		sum += math.Abs(((d2*l2*l2 + l3*l3) - d) / d)
	}
	return sum
}

func oqsCalcErrABCD(a, b, c, d, aq, bq, cq, dq float64) float64 {
	var sum float64
	if d == 0 {
		sum = math.Abs(bq * dq)
	} else {
		sum = math.Abs((bq*dq - d) / d)
	}
	if c == 0 {
		sum += math.Abs(bq*cq + aq*dq)
	} else {
		sum += math.Abs(((bq*cq + aq*dq) - c) / c)
	}
	if b == 0 {
		sum += math.Abs(bq + aq*cq + dq)
	} else {
		sum += math.Abs(((bq + aq*cq + dq) - b) / b)
	}
	if a == 0 {
		sum += math.Abs(aq + cq)
	} else {
		sum += math.Abs(((aq + cq) - a) / a)
	}
	return sum
}

func oqsCalcErrABCDCmplx(a, b, c, d float64, aq, bq, cq, dq complex128) float64 {
	var sum float64
	if d == 0 {
		sum = cmplx.Abs(bq * dq)
	} else {
		sum = cmplx.Abs((bq*dq - complex(d, 0)) / complex(d, 0))
	}
	if c == 0 {
		sum += cmplx.Abs(bq*cq + aq*dq)
	} else {
		sum += cmplx.Abs(((bq*cq + aq*dq) - complex(c, 0)) / complex(c, 0))
	}
	if b == 0 {
		sum += cmplx.Abs(bq + aq*cq + dq)
	} else {
		sum += cmplx.Abs(((bq + aq*cq + dq) - complex(b, 0)) / complex(b, 0))
	}
	if a == 0 {
		sum += cmplx.Abs(aq + cq)
	} else {
		sum += cmplx.Abs(((aq + cq) - complex(a, 0)) / complex(a, 0))
	}
	return sum
}

func oqsCalcErrABC(a, b, c, aq, bq, cq, dq float64) float64 {
	var sum float64
	if c == 0 {
		sum = math.Abs(bq*cq + aq*dq)
	} else {
		sum = math.Abs(((bq*cq + aq*dq) - c) / c)
	}
	if b == 0 {
		sum += math.Abs(bq + aq*cq + dq)
	} else {
		sum += math.Abs(((bq + aq*cq + dq) - b) / b)
	}
	if a == 0 {
		sum += math.Abs(aq + cq)
	} else {
		sum += math.Abs(((aq + cq) - a) / a)
	}
	return sum
}

// oqsNRabcd refines the quadratic factor coefficients with at most 8
// Newton-Raphson iterations over the 4x4 system, using the analytic inverse
// Jacobian.
func oqsNRabcd(a, b, c, d, aq, bq, cq, dq float64) (float64, float64, float64, float64) {
	x := [4]float64{aq, bq, cq, dq}
	var xold, dx [4]float64
	var jinv [4][4]float64
	var fvec [4]float64
	vr := [4]float64{d, c, b, a}

	fvec[0] = x[1]*x[3] - d
	fvec[1] = x[1]*x[2] + x[0]*x[3] - c
	fvec[2] = x[1] + x[0]*x[2] + x[3] - b
	fvec[3] = x[0] + x[2] - a

	errf := 0.0
	for k := 0; k < 4; k++ {
		if vr[k] == 0 {
			errf += math.Abs(fvec[k])
		} else {
			errf += math.Abs(fvec[k] / vr[k])
		}
	}

	for iter := 0; iter < 8; iter++ {
		x02 := x[0] - x[2]
		det := x[1]*x[1] + x[1]*(-x[2]*x02-2*x[3]) + x[3]*(x[0]*x02+x[3])
		if det == 0 {
			break
		}
		jinv[0][0] = x02
		jinv[0][1] = x[3] - x[1]
		jinv[0][2] = x[1]*x[2] - x[0]*x[3]
		jinv[0][3] = -x[1]*jinv[0][1] - x[0]*jinv[0][2]
		jinv[1][0] = x[0]*jinv[0][0] + jinv[0][1]
		jinv[1][1] = -x[1] * jinv[0][0]
		jinv[1][2] = -x[1] * jinv[0][1]
		jinv[1][3] = -x[1] * jinv[0][2]
		jinv[2][0] = -jinv[0][0]
		jinv[2][1] = -jinv[0][1]
		jinv[2][2] = -jinv[0][2]
		jinv[2][3] = jinv[0][2]*x[2] + jinv[0][1]*x[3]
		jinv[3][0] = -x[2]*jinv[0][0] - jinv[0][1]
		jinv[3][1] = jinv[0][0] * x[3]
		jinv[3][2] = x[3] * jinv[0][1]
		jinv[3][3] = x[3] * jinv[0][2]

		for k1 := 0; k1 < 4; k1++ {
			dx[k1] = 0
			for k2 := 0; k2 < 4; k2++ {
				dx[k1] += jinv[k1][k2] * fvec[k2]
			}
		}
		xold = x
		for k1 := 0; k1 < 4; k1++ {
			x[k1] += -dx[k1] / det
		}

		fvec[0] = x[1]*x[3] - d
		fvec[1] = x[1]*x[2] + x[0]*x[3] - c
		fvec[2] = x[1] + x[0]*x[2] + x[3] - b
		fvec[3] = x[0] + x[2] - a

		errfold := errf
		errf = 0
		for k := 0; k < 4; k++ {
			if vr[k] == 0 {
				errf += math.Abs(fvec[k])
			} else {
				errf += math.Abs(fvec[k] / vr[k])
			}
		}
		if errf == 0 {
			break
		}
		if errf >= errfold {
			x = xold
			break
		}
	}

	return x[0], x[1], x[2], x[3]
}

// oqsSolveQuadratic solves the monic quadratic z^2 + a*z + b = 0, returning
// the larger-magnitude root first.
func oqsSolveQuadratic(a, b float64) [2]complex128 {
	var roots [2]complex128
	diskr := a*a - 4*b
	if diskr >= 0 {
		var div float64
		if a >= 0 {
			div = -a - math.Sqrt(diskr)
		} else {
			div = -a + math.Sqrt(diskr)
		}
		zmax := div / 2
		var zmin float64
		if zmax != 0 {
			zmin = b / zmax
		}
		roots[0] = complex(zmax, 0)
		roots[1] = complex(zmin, 0)
	} else {
		sqrtd := math.Sqrt(-diskr)
		roots[0] = complex(-a/2, sqrtd/2)
		roots[1] = complex(-a/2, -sqrtd/2)
	}
	return roots
}

// Quartic returns the 4 complex roots of a*t^4 + b*t^3 + c*t^2 + d*t + e = 0
// given coefficients [a, b, c, d, e], highest degree first.
//
// Precondition: the routine cannot handle degenerate degrees. A zero leading
// coefficient yields four zero roots; callers must special-case
// exactly-cubic or exactly-quadratic inputs before reaching this path.
func Quartic(coeff [5]float64) [4]complex128 {
	var roots [4]complex128

	if coeff[0] == 0 {
		return roots
	}

	a := coeff[1] / coeff[0]
	b := coeff[2] / coeff[0]
	c := coeff[3] / coeff[0]
	d := coeff[4] / coeff[0]
	phi0 := oqsCalcPhi0(a, b, c, d, false)

	rfact := 1.0
	if math.IsNaN(phi0) || math.IsInf(phi0, 0) {
		rfact = quartRescaleFact
		rfactsq := rfact * rfact
		a /= rfact
		b /= rfactsq
		c /= rfactsq * rfact
		d /= rfactsq * rfactsq
		phi0 = oqsCalcPhi0(a, b, c, d, true)
	}

	l1 := a / 2
	l3 := b/6 + phi0/2
	del2 := c - a*l3
	nsol := 0
	bl311 := 2*b/3 - phi0 - l1*l1
	dml3l3 := d - l3*l3

	var d2m, l2m, res [12]float64
	resmin := 0.0

	if bl311 != 0 {
		d2m[nsol] = bl311
		l2m[nsol] = del2 / (2 * d2m[nsol])
		res[nsol] = oqsCalcErrLDLT(b, c, d, d2m[nsol], l1, l2m[nsol], l3)
		nsol++
	}
	if del2 != 0 {
		l2m[nsol] = 2 * dml3l3 / del2
		if l2m[nsol] != 0 {
			d2m[nsol] = del2 / (2 * l2m[nsol])
			res[nsol] = oqsCalcErrLDLT(b, c, d, d2m[nsol], l1, l2m[nsol], l3)
			nsol++
		}

		d2m[nsol] = bl311
		l2m[nsol] = 2 * dml3l3 / del2
		res[nsol] = oqsCalcErrLDLT(b, c, d, d2m[nsol], l1, l2m[nsol], l3)
		nsol++
	}

	var d2, l2 float64
	if nsol != 0 {
		kmin := 0
		for k1 := 0; k1 < nsol; k1++ {
			if k1 == 0 || res[k1] < resmin {
				resmin = res[k1]
				kmin = k1
			}
		}
		d2 = d2m[kmin]
		l2 = l2m[kmin]
	}

	whichcase := 0
	realcase := [2]int{-1, -1}
	var aq, bq, cq, dq float64
	var aq1, bq1, cq1, dq1 float64
	var acx, bcx, ccx, dcx complex128
	var acx1, bcx1, ccx1, dcx1 complex128
	var err0, err1 float64

	if d2 < 0 {
		gamma := math.Sqrt(-d2)
		aq = l1 + gamma
		bq = l3 + gamma*l2

		cq = l1 - gamma
		dq = l3 - gamma*l2
		if math.Abs(dq) < math.Abs(bq) {
			dq = d / bq
		} else if math.Abs(dq) > math.Abs(bq) {
			bq = d / dq
		}
		if math.Abs(aq) < math.Abs(cq) {
			nsol = 0
			var aqv, errv [3]float64
			errmin := 0.0
			if dq != 0 {
				aqv[nsol] = (c - bq*cq) / dq
				errv[nsol] = oqsCalcErrABC(a, b, c, aqv[nsol], bq, cq, dq)
				nsol++
			}
			if cq != 0 {
				aqv[nsol] = (b - dq - bq) / cq
				errv[nsol] = oqsCalcErrABC(a, b, c, aqv[nsol], bq, cq, dq)
				nsol++
			}
			aqv[nsol] = a - cq
			errv[nsol] = oqsCalcErrABC(a, b, c, aqv[nsol], bq, cq, dq)
			nsol++
			kmin := 0
			for k := 0; k < nsol; k++ {
				if k == 0 || errv[k] < errmin {
					kmin = k
					errmin = errv[k]
				}
			}
			aq = aqv[kmin]
		} else {
			nsol = 0
			var cqv, errv [3]float64
			errmin := 0.0
			if bq != 0 {
				cqv[nsol] = (c - aq*dq) / bq
				errv[nsol] = oqsCalcErrABC(a, b, c, aq, bq, cqv[nsol], dq)
				nsol++
			}
			if aq != 0 {
				cqv[nsol] = (b - bq - dq) / aq
				errv[nsol] = oqsCalcErrABC(a, b, c, aq, bq, cqv[nsol], dq)
				nsol++
			}
			cqv[nsol] = a - aq
			errv[nsol] = oqsCalcErrABC(a, b, c, aq, bq, cqv[nsol], dq)
			nsol++
			kmin := 0
			for k := 0; k < nsol; k++ {
				if k == 0 || errv[k] < errmin {
					kmin = k
					errmin = errv[k]
				}
			}
			cq = cqv[kmin]
		}
		realcase[0] = 1
	} else if d2 > 0 {
		gamma := math.Sqrt(d2)
		acx = complex(l1, gamma)
		bcx = complex(l3, gamma*l2)
		ccx = cmplx.Conj(acx)
		dcx = cmplx.Conj(bcx)
		realcase[0] = 0
	}

	if realcase[0] == -1 || math.Abs(d2) <= macheps*max3(math.Abs(2*b/3), math.Abs(phi0), l1*l1) {
		d3 := d - l3*l3
		if realcase[0] == 1 {
			err0 = oqsCalcErrABCD(a, b, c, d, aq, bq, cq, dq)
		} else if realcase[0] == 0 {
			err0 = oqsCalcErrABCDCmplx(a, b, c, d, acx, bcx, ccx, dcx)
		}
		if d3 <= 0 {
			realcase[1] = 1
			aq1 = l1
			bq1 = l3 + math.Sqrt(-d3)
			cq1 = l1
			dq1 = l3 - math.Sqrt(-d3)
			if math.Abs(dq1) < math.Abs(bq1) {
				dq1 = d / bq1
			} else if math.Abs(dq1) > math.Abs(bq1) {
				bq1 = d / dq1
			}
			err1 = oqsCalcErrABCD(a, b, c, d, aq1, bq1, cq1, dq1)
		} else {
			realcase[1] = 0
			acx1 = complex(l1, 0)
			bcx1 = complex(l3, math.Sqrt(d3))
			ccx1 = complex(l1, 0)
			dcx1 = cmplx.Conj(bcx1)
			err1 = oqsCalcErrABCDCmplx(a, b, c, d, acx1, bcx1, ccx1, dcx1)
		}
		if realcase[0] == -1 || err1 < err0 {
			whichcase = 1
			if realcase[1] == 1 {
				aq, bq, cq, dq = aq1, bq1, cq1, dq1
			} else {
				acx, bcx, ccx, dcx = acx1, bcx1, ccx1, dcx1
			}
		}
	}

	if realcase[whichcase] == 1 {
		aq, bq, cq, dq = oqsNRabcd(a, b, c, d, aq, bq, cq, dq)
		qroots := oqsSolveQuadratic(aq, bq)
		roots[0] = qroots[0]
		roots[1] = qroots[1]
		qroots = oqsSolveQuadratic(cq, dq)
		roots[2] = qroots[0]
		roots[3] = qroots[1]
	} else {
		if whichcase == 0 {
			cdiskr := acx*acx/4 - bcx
			zx1 := -acx/2 + cmplx.Sqrt(cdiskr)
			zx2 := -acx/2 - cmplx.Sqrt(cdiskr)
			zxmax := zx1
			if cmplx.Abs(zx2) > cmplx.Abs(zx1) {
				zxmax = zx2
			}
			zxmin := bcx / zxmax
			roots[0] = zxmin
			roots[1] = cmplx.Conj(zxmin)
			roots[2] = zxmax
			roots[3] = cmplx.Conj(zxmax)
		} else {
			cdiskr := cmplx.Sqrt(acx*acx - 4*bcx)
			zx1 := -0.5 * (acx + cdiskr)
			zx2 := -0.5 * (acx - cdiskr)
			zxmax := zx1
			if cmplx.Abs(zx2) > cmplx.Abs(zx1) {
				zxmax = zx2
			}
			zxmin := bcx / zxmax
			roots[0] = zxmax
			roots[1] = zxmin
			cdiskr = cmplx.Sqrt(ccx*ccx - 4*dcx)
			zx1 = -0.5 * (ccx + cdiskr)
			zx2 = -0.5 * (ccx - cdiskr)
			zxmax = zx1
			if cmplx.Abs(zx2) > cmplx.Abs(zx1) {
				zxmax = zx2
			}
			zxmin = dcx / zxmax
			roots[2] = zxmax
			roots[3] = zxmin
		}
	}

	if rfact != 1 {
		for k := 0; k < 4; k++ {
			roots[k] *= complex(rfact, 0)
		}
	}

	return roots
}

// SolveQuartics solves a batch of quartics, returning for each the smallest
// non-negative real root, or +Inf if none exists. Each candidate polynomial
// produced in one detection pass is independent, so the batch form is purely
// a performance surface; the numerics are identical to calling Quartic per
// equation.
func SolveQuartics(ps [][5]float64) []float64 {
	out := make([]float64, len(ps))
	for i, p := range ps {
		rs := Quartic(p)
		out[i] = SmallestPositiveReal(rs[:])
	}
	return out
}
