/*
Package optimizer searches for an encoding of a frame that fits a byte budget.

The search is greedy and runs in two stages. Stage one walks the primary
(WebP) quality ladder from high to low and accepts the first encoding whose
size is within the budget. If none fits, stage two walks the fallback (JPEG)
ladder the same way. When neither stage fits, the smallest encoding seen in
either stage is kept and the result is flagged OverBudget.

Every trial is written to its final path in the output directory and measured
with stat, so the filesystem is the scratch space:

	opt := optimizer.New(budget,
		optimizer.Stage{Encoder: optimizer.NewWebPEncoder(6), Ladder: optimizer.Ladder{95, 90, 85}},
		optimizer.Stage{Encoder: optimizer.NewJPEGEncoder(), Ladder: optimizer.FallbackLadder(50, 10, 5)},
	)
	result, err := opt.Optimize(frame, outDir, frame.BaseName())

When Optimize returns, exactly one of base.webp and base.jpg exists. On a
write or encode failure neither does, and the error wraps ErrEncodeIO.
*/
package optimizer
