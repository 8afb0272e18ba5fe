package ecs

import (
	"reflect"
	"sort"
)

// EntityID 是实体的唯一标识符
// 0 保留为无效ID，可用于"无占用者"之类的哨兵值
type EntityID uint64

// InvalidEntity 表示无效实体（格子为空、槽位无占用者等）
const InvalidEntity EntityID = 0

// EntityManager 管理所有实体和组件
// 单线程使用：所有读写都发生在游戏主循环内，不需要加锁
type EntityManager struct {
	nextID uint64
	// 实体-组件映射: EntityID -> ComponentType -> Component实例
	components map[EntityID]map[reflect.Type]interface{}
	// 待删除的实体ID列表（延迟删除，帧末统一清理）
	destroyQueue []EntityID
}

// NewEntityManager 创建一个新的 EntityManager 实例
func NewEntityManager() *EntityManager {
	return &EntityManager{
		nextID:       1, // ID从1开始，0保留为 InvalidEntity
		components:   make(map[EntityID]map[reflect.Type]interface{}),
		destroyQueue: make([]EntityID, 0),
	}
}

// CreateEntity 创建新实体并返回唯一ID
// ID 单调递增，后创建的实体ID一定更大（渲染系统依赖这一点
// 决定重叠物品的绘制顺序）
func (em *EntityManager) CreateEntity() EntityID {
	id := EntityID(em.nextID)
	em.nextID++
	em.components[id] = make(map[reflect.Type]interface{})
	return id
}

// IsAlive 检查实体是否存在（已创建且未被清理）
func (em *EntityManager) IsAlive(id EntityID) bool {
	_, ok := em.components[id]
	return ok
}

// DestroyEntity 标记实体待删除（不立即删除）
// 实际删除在 FlushDestroyed 中进行，避免在系统遍历过程中修改映射
func (em *EntityManager) DestroyEntity(id EntityID) {
	em.destroyQueue = append(em.destroyQueue, id)
}

// FlushDestroyed 清理所有标记删除的实体
// 应在每帧更新结束时调用一次
func (em *EntityManager) FlushDestroyed() {
	for _, id := range em.destroyQueue {
		delete(em.components, id)
	}
	em.destroyQueue = em.destroyQueue[:0]
}

// AddComponent 为实体添加组件
// 组件必须以指针形式传入，同一类型的组件后添加的覆盖先添加的
func (em *EntityManager) AddComponent(id EntityID, component interface{}) {
	if compMap, exists := em.components[id]; exists {
		compMap[reflect.TypeOf(component)] = component
	}
}

// RemoveComponent 从实体移除指定类型的组件
func (em *EntityManager) RemoveComponent(id EntityID, componentType reflect.Type) {
	if compMap, exists := em.components[id]; exists {
		delete(compMap, componentType)
	}
}

// GetEntitiesWith 查询拥有指定组件类型组合的所有实体
// 返回结果按 EntityID 升序排列，保证遍历顺序确定
func (em *EntityManager) GetEntitiesWith(componentTypes ...reflect.Type) []EntityID {
	result := make([]EntityID, 0)

	for id, compMap := range em.components {
		hasAll := true
		for _, ct := range componentTypes {
			if _, found := compMap[ct]; !found {
				hasAll = false
				break
			}
		}
		if hasAll {
			result = append(result, id)
		}
	}

	sort.Slice(result, func(i, j int) bool { return result[i] < result[j] })
	return result
}

// EntityCount 返回当前存活的实体数量（不含已标记删除但未清理的）
func (em *EntityManager) EntityCount() int {
	alive := len(em.components)
	for _, id := range em.destroyQueue {
		if _, ok := em.components[id]; ok {
			alive--
		}
	}
	return alive
}

// GetComponent 获取实体的特定类型组件（泛型辅助函数）
// T 必须是组件的指针类型，如 GetComponent[*components.PositionComponent]
func GetComponent[T any](em *EntityManager, id EntityID) (T, bool) {
	var zero T
	compMap, exists := em.components[id]
	if !exists {
		return zero, false
	}
	comp, found := compMap[reflect.TypeOf(zero)]
	if !found {
		return zero, false
	}
	return comp.(T), true
}

// HasComponent 检查实体是否拥有特定类型组件（泛型辅助函数）
func HasComponent[T any](em *EntityManager, id EntityID) bool {
	_, ok := GetComponent[T](em, id)
	return ok
}

// TypeOf 返回组件指针类型的 reflect.Type
// 用于构造 GetEntitiesWith 的查询参数：
//
//	em.GetEntitiesWith(ecs.TypeOf[*components.ItemComponent]())
func TypeOf[T any]() reflect.Type {
	var zero T
	return reflect.TypeOf(zero)
}
