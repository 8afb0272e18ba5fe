package systems

import (
	"github.com/decker502/sortbox/pkg/components"
	"github.com/decker502/sortbox/pkg/ecs"
	"github.com/decker502/sortbox/pkg/utils"
)

// SnapSystem 推进吸附飞行动画
// 放置判定挂上 SnapMotionComponent 后，本系统逐帧插值物品位置，
// 到达终点时物品精确落在目标锚点上并移除动画组件
//
// 协作式非阻塞：没有任何等待，动画由每帧 Update 驱动
type SnapSystem struct {
	entityManager *ecs.EntityManager
}

// NewSnapSystem 创建吸附动画系统
func NewSnapSystem(em *ecs.EntityManager) *SnapSystem {
	return &SnapSystem{entityManager: em}
}

// Update 推进所有进行中的吸附动画
// 参数:
//   - deltaTime: 时间增量（秒）
func (s *SnapSystem) Update(deltaTime float64) {
	entityIDs := s.entityManager.GetEntitiesWith(
		ecs.TypeOf[*components.SnapMotionComponent](),
		ecs.TypeOf[*components.PositionComponent](),
	)

	for _, id := range entityIDs {
		motion, _ := ecs.GetComponent[*components.SnapMotionComponent](s.entityManager, id)
		pos, _ := ecs.GetComponent[*components.PositionComponent](s.entityManager, id)

		motion.Elapsed += deltaTime

		// 时长非法或已走完：直接落到终点
		if motion.Duration <= 0 || motion.Elapsed >= motion.Duration {
			pos.X = motion.ToX
			pos.Y = motion.ToY
			s.entityManager.RemoveComponent(id, ecs.TypeOf[*components.SnapMotionComponent]())
			continue
		}

		t := motion.Elapsed / motion.Duration
		eased := utils.EaseOutCubic(t)
		if motion.Bounce {
			eased = utils.EaseOutBack(t)
		}

		pos.X = utils.Lerp(motion.FromX, motion.ToX, eased)
		pos.Y = utils.Lerp(motion.FromY, motion.ToY, eased)
	}
}
