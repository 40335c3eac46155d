package engine

import fm "ferrous-engine/ferrousmg"

// KillerTable keeps, per ply, the two most recent quiet moves that caused
// a beta cutoff.
type KillerTable struct {
	KillerMoves [MaxDepth + 1][2]fm.Move
}

func (k *KillerTable) InsertKiller(move fm.Move, ply int) {
	if move != k.KillerMoves[ply][0] {
		k.KillerMoves[ply][1] = k.KillerMoves[ply][0]
		k.KillerMoves[ply][0] = move
	}
}

// IsKiller reports whether move is stored for ply.
func (k *KillerTable) IsKiller(move fm.Move, ply int) bool {
	return move != fm.NoMove && (k.KillerMoves[ply][0] == move || k.KillerMoves[ply][1] == move)
}

// Clear the killer moves table.
func (k *KillerTable) ClearKillers() {
	for ply := 0; ply < MaxDepth+1; ply++ {
		k.KillerMoves[ply][0] = fm.NoMove
		k.KillerMoves[ply][1] = fm.NoMove
	}
}
