package searcher

// Scoring bounds for minimax

// WinScore dominates every heuristic score. A win found at depth d scores
// WinScore-d so faster wins (and slower losses) are preferred.
const WinScore = 100000.0

const DrawScore = 0.0
