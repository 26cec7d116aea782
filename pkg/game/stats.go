package game

// Stats 一局的战斗统计
type Stats struct {
	TimeSurvived      float64
	WavesCompleted    int
	HighestWave       int
	EnemiesKilled     int
	DamageDealt       int
	DamageTaken       int
	TotalShots        int
	HitsLanded        int
	CriticalHits      int
	MaxCombo          int
	XPGained          int
	PowerUpsCollected int
	UpgradesChosen    int
	LevelReached      int
	KillsByEnemyType  map[string]int
}

// Accuracy 命中率（百分比），未开火时为 0
func (s *Stats) Accuracy() float64 {
	if s.TotalShots == 0 {
		return 0
	}
	return float64(s.HitsLanded) / float64(s.TotalShots) * 100
}

// RecordKill 记录一次击杀
func (s *Stats) RecordKill(enemyType string) {
	s.EnemiesKilled++
	if s.KillsByEnemyType == nil {
		s.KillsByEnemyType = make(map[string]int)
	}
	s.KillsByEnemyType[enemyType]++
}

// RecordWaveCompleted 记录完成的波次
func (s *Stats) RecordWaveCompleted(wave int) {
	s.WavesCompleted++
	if wave > s.HighestWave {
		s.HighestWave = wave
	}
}

// Copy 返回深拷贝
func (s *Stats) Copy() Stats {
	out := *s
	if s.KillsByEnemyType != nil {
		out.KillsByEnemyType = make(map[string]int, len(s.KillsByEnemyType))
		for k, v := range s.KillsByEnemyType {
			out.KillsByEnemyType[k] = v
		}
	}
	return out
}
