// Package config 加载模拟核心使用的数值表
//
// 所有表以 YAML 形式编译进二进制（data/*.yaml），也可以从磁盘目录覆盖。
package config

import (
	"embed"
	"fmt"
	"io/fs"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed data/*.yaml
var dataFS embed.FS

// 配置文件名
const (
	EnemiesFile     = "enemies.yaml"
	WavesFile       = "waves.yaml"
	ProgressionFile = "progression.yaml"
	WeaponsFile     = "weapons.yaml"
	PowerUpsFile    = "powerups.yaml"
	PlayerFile      = "player.yaml"
	UpgradesFile    = "upgrades.yaml"
)

// GameConfig 聚合所有数值表
type GameConfig struct {
	Enemies     EnemyConfig
	Waves       WaveTable
	Progression ProgressionConfig
	Weapons     WeaponConfig
	PowerUps    PowerUpConfig
	Player      PlayerConfig
	Upgrades    UpgradeConfig
}

// DefaultGameConfig 返回编译进二进制的默认配置
// 内置配置解析失败属于构建错误，直接 panic
func DefaultGameConfig() *GameConfig {
	sub, err := fs.Sub(dataFS, "data")
	if err != nil {
		panic(fmt.Sprintf("embedded config missing: %v", err))
	}
	cfg, err := LoadGameConfigFS(sub)
	if err != nil {
		panic(fmt.Sprintf("embedded config invalid: %v", err))
	}
	return cfg
}

// LoadGameConfig 从磁盘目录加载配置
// 目录中缺失的文件使用内置默认值
// 参数:
//
//	dir - 配置目录路径
//
// 返回:
//
//	*GameConfig - 解析后的配置
//	error - 文件读取、解析或验证失败时返回错误
func LoadGameConfig(dir string) (*GameConfig, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to open config dir %s: %w", dir, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("config path %s is not a directory", dir)
	}
	return LoadGameConfigFS(overlayFS{primary: os.DirFS(dir), fallback: mustSub(dataFS, "data")})
}

// LoadGameConfigFS 从任意文件系统加载全部配置表
func LoadGameConfigFS(fsys fs.FS) (*GameConfig, error) {
	cfg := &GameConfig{}

	steps := []struct {
		file     string
		target   interface{}
		validate func() error
	}{
		{EnemiesFile, &cfg.Enemies, func() error { return validateEnemyConfig(&cfg.Enemies) }},
		{WavesFile, &cfg.Waves, func() error { return validateWaveTable(&cfg.Waves) }},
		{ProgressionFile, &cfg.Progression, func() error { return validateProgressionConfig(&cfg.Progression) }},
		{WeaponsFile, &cfg.Weapons, func() error { return validateWeaponConfig(&cfg.Weapons) }},
		{PowerUpsFile, &cfg.PowerUps, func() error { return validatePowerUpConfig(&cfg.PowerUps) }},
		{PlayerFile, &cfg.Player, func() error { return validatePlayerConfig(&cfg.Player) }},
		{UpgradesFile, &cfg.Upgrades, func() error { return validateUpgradeConfig(&cfg.Upgrades) }},
	}

	for _, step := range steps {
		data, err := fs.ReadFile(fsys, step.file)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", step.file, err)
		}
		if err := yaml.Unmarshal(data, step.target); err != nil {
			return nil, fmt.Errorf("failed to parse config YAML from %s: %w", step.file, err)
		}
		if err := step.validate(); err != nil {
			return nil, fmt.Errorf("invalid config in %s: %w", step.file, err)
		}
	}

	return cfg, nil
}

func mustSub(fsys fs.FS, dir string) fs.FS {
	sub, err := fs.Sub(fsys, dir)
	if err != nil {
		panic(err)
	}
	return sub
}

// overlayFS 优先读取 primary，文件不存在时回退到 fallback
type overlayFS struct {
	primary  fs.FS
	fallback fs.FS
}

func (o overlayFS) Open(name string) (fs.File, error) {
	f, err := o.primary.Open(name)
	if err == nil {
		return f, nil
	}
	if os.IsNotExist(err) {
		return o.fallback.Open(name)
	}
	return nil, err
}
